package compose

// SlideContext carries the per-slide inputs the instruction is composed from.
// Every field is optional; empty fields are omitted from the instruction so
// composition stays deterministic.
type SlideContext struct {
	// Title is the working title of the slide.
	Title string
	// Topic is a short statement of what the slide must convey.
	Topic string
	// Notes are free-form authoring notes passed through to the generator.
	Notes string
	// Position is the 1-based slide index within the presentation; 0 omits it.
	Position int
	// TotalSlides is the presentation length; 0 omits it.
	TotalSlides int
}

// PresentationContext carries deck-level inputs shared by every slide.
type PresentationContext struct {
	// Title is the presentation title.
	Title string
	// Audience describes who the deck is for.
	Audience string
	// Tone is the requested writing register (e.g. "formal", "energetic").
	Tone string
	// Language is the output language; empty means English.
	Language string
}
