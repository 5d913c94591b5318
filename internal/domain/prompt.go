package domain

// PromptTemplate is a prompt template keyed by category. UserTemplate contains
// a {topic} placeholder substituted with the generation query. System is an
// optional style instruction, used only when the chosen model supports one.
type PromptTemplate struct {
	UserTemplate string `toml:"user_template" json:"user_template"`
	System       string `toml:"system,omitempty" json:"system,omitempty"`
}

// CategoryBlogGeneration is the template category used by the article
// generation orchestrator.
const CategoryBlogGeneration = "blog_generation"
