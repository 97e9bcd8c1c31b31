package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/xiaot623/neuralthreads/internal/adapter/stylist"
	"github.com/xiaot623/neuralthreads/internal/chat"
	"github.com/xiaot623/neuralthreads/internal/upload"
)

const chatLongDesc string = `Chat with the AI stylist.

Lines are sent as questions. Commands:
  /attach <file>...  stage outfit photos for the next message
  /drop <n>          remove staged photo n (starting at 1)
  /staged            list staged photos
  /retry             resend the last question
  /quit              leave

Examples:
  neuralthreads chat
  neuralthreads chat --server http://localhost:8080 --image look.jpg`

type chatCommander struct {
	server  string
	timeout time.Duration
	images  []string
}

func newChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the AI stylist",
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&cmder.server, "server", "s", "http://localhost:8080", "Stylist backend URL")
	cmd.Flags().DurationVar(&cmder.timeout, "timeout", 90*time.Second, "Per-request timeout")
	cmd.Flags().StringSliceVarP(&cmder.images, "image", "i", nil, "Photo to stage before the first message")

	return cmd
}

var (
	boldGreen = color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow    = color.New(color.FgYellow).SprintFunc()
	red       = color.New(color.FgRed).SprintFunc()
)

// printer renders the conversation to the terminal.
type printer struct {
	out io.Writer
}

func (p *printer) OnMessage(m chat.Message) {
	if m.IsUser {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", boldCyan("Stylist:"), m.Content)
	for _, img := range m.Images {
		fmt.Fprintf(p.out, "  %s\n", img)
	}
	fmt.Fprintln(p.out)
}

func (p *printer) OnLoading(loading bool) {
	if loading {
		fmt.Fprintln(p.out, yellow("thinking..."))
	}
}

func (p *printer) Notify(message string) {
	fmt.Fprintln(p.out, red(message))
}

func (c *chatCommander) run(ctx context.Context, in io.Reader, out io.Writer) error {
	p := &printer{out: out}
	orch := chat.NewOrchestrator(stylist.NewClient(c.server, c.timeout),
		chat.WithObserver(p),
		chat.WithNotifier(p),
	)
	encoder := upload.NewEncoder()

	fmt.Fprintln(out, boldGreen("Neural Threads"))
	fmt.Fprintf(out, "%s %s\n\n", boldCyan("Stylist:"), orch.Transcript().Messages()[0].Content)

	if len(c.images) > 0 {
		if err := c.attach(ctx, out, encoder, orch.Pending(), c.images); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, boldGreen("You: "))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			fmt.Fprintln(out, "Bye!")
			return nil
		case line == "/retry":
			if !orch.RetryLastMessage(ctx) {
				fmt.Fprintln(out, yellow("nothing to retry"))
			}
		case line == "/staged":
			for i, img := range orch.Pending().Images() {
				fmt.Fprintf(out, "  %d. %s\n", i+1, preview(img))
			}
		case strings.HasPrefix(line, "/attach"):
			paths := strings.Fields(strings.TrimPrefix(line, "/attach"))
			if err := c.attach(ctx, out, encoder, orch.Pending(), paths); err != nil {
				fmt.Fprintln(out, red(err.Error()))
			}
		case strings.HasPrefix(line, "/drop"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/drop")))
			if err != nil || !orch.Pending().Remove(n-1) {
				fmt.Fprintln(out, yellow("no such staged photo"))
				continue
			}
			fmt.Fprintf(out, "%d photo(s) staged\n", orch.Pending().Len())
		default:
			orch.Send(ctx, line, orch.Pending().Images())
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *chatCommander) attach(ctx context.Context, out io.Writer, encoder *upload.Encoder, set *upload.PendingSet, paths []string) error {
	files := make([]upload.File, 0, len(paths))
	for _, path := range paths {
		files = append(files, upload.FromPath(path))
	}
	result, err := encoder.AddTo(ctx, set, files)
	if err != nil {
		return fmt.Errorf("could not attach photos: %w", err)
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(out, "%s %s (%s)\n", yellow("skipped"), s.Name, s.Reason)
	}
	fmt.Fprintf(out, "%d photo(s) staged\n", set.Len())
	return nil
}

func preview(dataURL string) string {
	if i := strings.IndexByte(dataURL, ','); i > 0 {
		return fmt.Sprintf("%s (%d bytes)", dataURL[:i], len(dataURL)-i-1)
	}
	return dataURL
}
