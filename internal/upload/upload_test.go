package upload_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/xiaot623/neuralthreads/internal/upload"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90wS\xde")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	pdfBytes  = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
)

var _ = Describe("Encoder", func() {
	var (
		ctx     context.Context
		encoder *upload.Encoder
		pending *upload.PendingSet
	)

	BeforeEach(func() {
		ctx = context.Background()
		encoder = upload.NewEncoder()
		pending = &upload.PendingSet{}
	})

	Context("with two images and a PDF", func() {
		It("stages only the images, in order, as one batch", func() {
			files := []upload.File{
				upload.FromBytes("look.png", pngBytes),
				upload.FromBytes("menu.pdf", pdfBytes),
				upload.FromBytes("shoes.jpg", jpegBytes),
			}

			result, err := encoder.AddTo(ctx, pending, files)
			Expect(err).NotTo(HaveOccurred())
			Expect(pending.Len()).To(Equal(2))

			images := pending.Images()
			Expect(images[0]).To(HavePrefix("data:image/png;base64,"))
			Expect(images[1]).To(HavePrefix("data:image/jpeg;base64,"))
			Expect(result.Skipped).To(ConsistOf(upload.Skipped{Name: "menu.pdf", Reason: upload.ReasonNotImage}))
		})
	})

	It("publishes nothing until the slowest image has been read", func() {
		fastOpened := make(chan struct{})
		release := make(chan struct{})
		fast := upload.File{Name: "fast.png", Open: func() (io.ReadCloser, error) {
			close(fastOpened)
			return io.NopCloser(bytes.NewReader(pngBytes)), nil
		}}
		slow := upload.File{Name: "slow.jpg", Open: func() (io.ReadCloser, error) {
			<-release
			return io.NopCloser(bytes.NewReader(jpegBytes)), nil
		}}

		done := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			defer close(done)
			_, err := encoder.AddTo(ctx, pending, []upload.File{fast, slow})
			Expect(err).NotTo(HaveOccurred())
		}()

		Eventually(fastOpened).Should(BeClosed())
		Consistently(pending.Len, "100ms", "10ms").Should(BeZero())

		close(release)
		Eventually(done).Should(BeClosed())
		Expect(pending.Len()).To(Equal(2))
		Expect(pending.Images()[0]).To(HavePrefix("data:image/png;base64,"))
		Expect(pending.Images()[1]).To(HavePrefix("data:image/jpeg;base64,"))
	})

	It("appends after what is already staged", func() {
		pending.Append([]string{"data:image/png;base64,OLD"})
		_, err := encoder.AddTo(ctx, pending, []upload.File{upload.FromBytes("a.png", pngBytes)})
		Expect(err).NotTo(HaveOccurred())
		Expect(pending.Images()).To(HaveLen(2))
		Expect(pending.Images()[0]).To(Equal("data:image/png;base64,OLD"))
	})

	It("leaves the set untouched when any read fails", func() {
		broken := upload.File{Name: "broken.png", Open: func() (io.ReadCloser, error) {
			return nil, errors.New("disk gone")
		}}
		_, err := encoder.AddTo(ctx, pending, []upload.File{upload.FromBytes("a.png", pngBytes), broken})
		Expect(err).To(MatchError(ContainSubstring("broken.png")))
		Expect(pending.Len()).To(BeZero())
	})

	It("skips images above the size ceiling", func() {
		small := upload.NewEncoder(upload.WithMaxImageBytes(8))
		result, err := small.Encode(ctx, []upload.File{upload.FromBytes("big.png", pngBytes)})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Images).To(BeEmpty())
		Expect(result.Skipped).To(ConsistOf(upload.Skipped{Name: "big.png", Reason: upload.ReasonTooLarge}))
	})

	It("reads files from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "outfit.png")
		Expect(os.WriteFile(path, pngBytes, 0o600)).To(Succeed())

		result, err := encoder.Encode(ctx, []upload.File{upload.FromPath(path)})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Images).To(Equal([]string{upload.DataURL("image/png", pngBytes)}))
	})
})

var _ = Describe("PendingSet", func() {
	It("removes by index and ignores out-of-range indexes", func() {
		set := &upload.PendingSet{}
		set.Append([]string{"a", "b", "c"})

		Expect(set.Remove(1)).To(BeTrue())
		Expect(set.Images()).To(Equal([]string{"a", "c"}))
		Expect(set.Remove(5)).To(BeFalse())
		Expect(set.Remove(-1)).To(BeFalse())
		Expect(set.Images()).To(Equal([]string{"a", "c"}))
	})

	It("does not let callers mutate the staged images", func() {
		set := &upload.PendingSet{}
		set.Append([]string{"a"})
		got := set.Images()
		got[0] = "z"
		Expect(set.Images()).To(Equal([]string{"a"}))
	})

	It("clears", func() {
		set := &upload.PendingSet{}
		set.Append([]string{"a", "b"})
		set.Clear()
		Expect(set.Len()).To(BeZero())
	})
})
