package frontend

// ExamplePrompts are sample news texts offered to first-time users
var ExamplePrompts = []string{
	"Breaking: Scientists discover revolutionary cancer treatment with 95% success rate",
	"Government announces free college education for all students starting next semester",
	"Celebrity claims COVID-19 vaccine contains tracking microchips",
	"New study shows chocolate helps with weight loss and improves memory",
}

// Examples returns a copy of the example prompts
func Examples() []string {
	out := make([]string, len(ExamplePrompts))
	copy(out, ExamplePrompts)
	return out
}
