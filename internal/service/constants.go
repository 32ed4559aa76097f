package service

const (
	expanderRole = "You are an expert Stable Diffusion prompt engineer. " +
		"Your task is to take a high-level concept and expand it into a detailed, high-quality prompt suitable for image generation. " +
		"Focus on descriptive adjectives, lighting, style, and atmosphere. Do NOT include any negative prompts."

	corePromptTemplate = "The core concept is: \"%s\""
	optionsHeader      = "Consider the following selected options:"
	optionLineTemplate = "%s: %s"
	expanderCue        = "\nDetailed Stable Diffusion prompt:"
)

// txt2img parameters; only the prompt varies between requests.
const (
	samplerName = "Euler a"
	steps       = 20
	nIter       = 1
	batchSize   = 3
	cfgScale    = 7
	imageWidth  = 512
	imageHeight = 512
)
