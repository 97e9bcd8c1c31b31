package style

// Advice texts returned by FallbackResponse.
const (
	ColorAdvice   = "For color coordination, consider these tips: Stick to a maximum of 3 colors in one outfit. Use the color wheel - complementary colors (opposite on the wheel) create striking looks, while analogous colors (next to each other) create harmony. Neutral colors like black, white, gray, and beige work with almost everything!"
	FormalAdvice  = "For formal/business attire: Choose well-fitted pieces in classic colors (navy, black, gray). A blazer instantly elevates any outfit. For men: suit or dress pants with button-down shirt. For women: blazer with dress pants/skirt, or a sheath dress. Always ensure your shoes are polished and professional."
	CasualAdvice  = "For casual looks: Dark jeans are versatile and flattering. Layer with cardigans, blazers, or jackets. Choose comfortable but fitted pieces. Mix textures for interest. Sneakers, loafers, or ankle boots work well. Don't forget accessories - they can make a simple outfit look intentional!"
	BodyAdvice    = "Dressing for your body type: Focus on fit over trends. Emphasize your favorite features. A-line cuts flatter most body types. High-waisted bottoms create a longer leg line. V-necks elongate the torso. The most important thing is wearing clothes that make YOU feel confident!"
	GeneralAdvice = "I'd love to help with your style questions! Here are some universal style tips: Invest in quality basics, ensure proper fit, choose a cohesive color palette, and add personality with accessories. What specific style area would you like advice on - colors, occasions, body type, or something else?"
)

// Degraded proxy responses.
const (
	UnconfiguredAdvice = "I'm having trouble connecting to my AI brain right now. Here's some general styling advice: Focus on fit first - well-fitted clothes always look better regardless of style. Consider your color palette and stick to 2-3 colors max per outfit."
	HighDemandAdvice   = "I'm currently experiencing high demand. Here's some quick styling advice: For a polished look, focus on well-fitted basics in neutral colors. Layer strategically and add one statement piece. What specific style question can I help you with?"
	TechnicalAdvice    = "I apologize for the technical difficulty. Here's some general styling advice: Start with well-fitted basics in colors that complement your skin tone. Build your wardrobe around versatile pieces that can be mixed and matched. What specific styling help do you need?"
)

var fallbackTable = Table[string]{
	Rules: []Rule[string]{
		{Keywords: []string{"color", "colour"}, Result: ColorAdvice},
		{Keywords: []string{"formal", "business"}, Result: FormalAdvice},
		{Keywords: []string{"casual"}, Result: CasualAdvice},
		{Keywords: []string{"body type", "figure"}, Result: BodyAdvice},
	},
	Default: GeneralAdvice,
}

// FallbackResponse returns canned advice for text. It never fails.
func FallbackResponse(text string) string {
	return fallbackTable.Lookup(text)
}
