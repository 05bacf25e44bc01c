package library

import "time"

const demoContent = `# The Future of Artificial Intelligence

Artificial Intelligence (AI) is no longer a concept confined to science fiction; it is a reality that is rapidly transforming our world. From the algorithms that power our social media feeds to the advanced diagnostics in healthcare, AI is pervasive.

## The Impact on Healthcare

One of the most promising areas for AI application is healthcare. Machine learning models are now capable of analyzing medical images with accuracy that rivals, and sometimes exceeds, human experts. This capability allows for earlier detection of diseases such as cancer, potentially saving countless lives.

## Creative Renaissance

Contrary to the fear that AI will replace human creativity, many artists are finding it to be a powerful tool. Generative AI models allow creators to explore new visual styles, generate musical ideas, and even brainstorm plot points for novels.

## Ethical Considerations

However, this rapid progress comes with challenges. Issues of bias in algorithms, data privacy, and the displacement of jobs are critical conversations that society must address. As we move forward, the goal should be to develop ethical AI that augments human capabilities rather than diminishing them.
`

// DemoItem is the entry seeded into a brand-new library.
func DemoItem() Item {
	return Item{
		ID:          "demo-1",
		Title:       "The Future of AI",
		Author:      "Tech Daily",
		Description: "An exploration of how Artificial Intelligence is reshaping our world, from healthcare to creative arts.",
		Content:     demoContent,
		Kind:        KindArticle,
		DateAdded:   time.Now().Add(-3 * time.Hour),
		CoverImage:  "https://images.unsplash.com/photo-1677442136019-21780ecad995?auto=format&fit=crop&q=80&w=1600",
	}
}
