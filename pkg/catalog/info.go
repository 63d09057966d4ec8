package catalog

// Info is the serializable view of a [Descriptor], used by "stepviz info"
// and the API.
type Info struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Category     Category   `json:"category" yaml:"category"`
	Difficulty   Difficulty `json:"difficulty" yaml:"difficulty"`
	Complexity   Complexity `json:"complexity" yaml:"complexity"`
	Description  string     `json:"description" yaml:"description"`
	Pseudocode   []string   `json:"pseudocode" yaml:"pseudocode"`
	Params       []Param    `json:"params" yaml:"params"`
	Sample       Input      `json:"sample" yaml:"sample"`
	SampleParams Params     `json:"sample_params,omitempty" yaml:"sample_params,omitempty"`
}

// Summary is the short listing entry.
type Summary struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Category   Category   `json:"category" yaml:"category"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Info returns the serializable view of d.
func (d *Descriptor) Info() Info {
	params := d.Params
	if params == nil {
		params = []Param{}
	}
	return Info{
		ID:           d.ID,
		Name:         d.Name,
		Category:     d.Category,
		Difficulty:   d.Difficulty,
		Complexity:   d.Complexity,
		Description:  d.Description,
		Pseudocode:   d.Pseudocode,
		Params:       params,
		Sample:       d.Sample,
		SampleParams: d.SampleParams,
	}
}

// Summary returns the listing entry for d.
func (d *Descriptor) Summary() Summary {
	return Summary{ID: d.ID, Name: d.Name, Category: d.Category, Difficulty: d.Difficulty}
}
