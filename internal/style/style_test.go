package style_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/xiaot623/neuralthreads/internal/style"
)

var _ = Describe("FallbackResponse", func() {
	DescribeTable("picks advice by the first matching keyword",
		func(text, want string) {
			Expect(style.FallbackResponse(text)).To(Equal(want))
		},
		Entry("color", "What color goes with navy?", style.ColorAdvice),
		Entry("british spelling", "COLOUR palette help", style.ColorAdvice),
		Entry("formal", "I need something formal for a business meeting", style.FormalAdvice),
		Entry("business only", "business lunch", style.FormalAdvice),
		Entry("casual", "Casual Friday ideas", style.CasualAdvice),
		Entry("body type", "what suits my body type", style.BodyAdvice),
		Entry("figure", "flattering for a pear figure", style.BodyAdvice),
		Entry("no keyword", "hello there", style.GeneralAdvice),
		Entry("empty", "", style.GeneralAdvice),
	)

	It("prefers color over formal when both appear", func() {
		Expect(style.FallbackResponse("formal colors")).To(Equal(style.ColorAdvice))
	})

	It("prefers casual over body type when both appear", func() {
		Expect(style.FallbackResponse("casual outfits for my body type")).To(Equal(style.CasualAdvice))
	})

	It("is deterministic", func() {
		Expect(style.FallbackResponse("weekend casual")).To(Equal(style.FallbackResponse("weekend casual")))
	})
})

var _ = Describe("Images", func() {
	DescribeTable("selects a set by the first matching keyword",
		func(text string, want [2]string) {
			Expect(style.Images(text)).To(Equal(want[:]))
		},
		Entry("formal", "formal dinner", style.FormalImages),
		Entry("professional", "Professional headshot outfit", style.FormalImages),
		Entry("everyday", "everyday wear", style.CasualImages),
		Entry("weekend", "weekend brunch", style.CasualImages),
		Entry("wedding", "red dress for a wedding", style.WeddingImages),
		Entry("special occasion", "a special occasion", style.WeddingImages),
		Entry("beach", "beach trip", style.VacationImages),
		Entry("summer", "SUMMER vibes", style.VacationImages),
		Entry("default", "anything", style.DefaultImages),
	)

	It("checks formal before wedding", func() {
		Expect(style.Images("formal wedding guest")).To(Equal(style.FormalImages[:]))
	})

	It("always returns exactly two URLs", func() {
		for _, text := range []string{"", "x", "business casual", "party at the beach"} {
			Expect(style.Images(text)).To(HaveLen(2))
		}
	})

	It("returns a slice the caller may modify", func() {
		got := style.Images("formal")
		got[0] = "changed"
		Expect(style.Images("formal")[0]).To(Equal(style.FormalImages[0]))
	})
})
