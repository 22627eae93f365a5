package importer

// Stats summarizes an import run.
type Stats struct {
	// Containers is the number of containers created. Reused ones are not counted.
	Containers int `json:"containers" yaml:"containers"`
	// Notes is the number of notes created.
	Notes int `json:"notes" yaml:"notes"`
	// Errors is the number of files that could not be imported.
	Errors int `json:"errors" yaml:"errors"`
}
