package site

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePrepareOutput StageName = "prepare_output"
	StageLoadTemplates StageName = "load_templates"
	StageDiscover      StageName = "discover"
	StageParse         StageName = "parse"
	StageWritePages    StageName = "write_pages"
	StageHomepage      StageName = "homepage"
	StageCopyAssets    StageName = "copy_assets"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline collects stage definitions in order.
type Pipeline struct {
	stages []StageDef
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{} }

// Add appends a stage.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.stages = append(p.stages, StageDef{Name: name, Fn: fn})
	return p
}

// Build returns the ordered stage list.
func (p *Pipeline) Build() []StageDef {
	return append([]StageDef(nil), p.stages...)
}
