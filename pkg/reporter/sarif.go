package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/fsutil"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

	// sarifStdinURI names standard input in artifact locations.
	sarifStdinURI = "stdin"
)

// SARIFOutput is the root of a SARIF log.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is one htmlcheck invocation.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
	Results     []SARIFResult     `json:"results"`
}

// SARIFInvocation records whether the run read every input. Files that
// could not be read appear as error notifications.
type SARIFInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is a problem with the run rather than the input.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID               string                `json:"id"`
	Name             string                `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText  `json:"shortDescription"`
	FullDescription  *SARIFMultiformatText `json:"fullDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig      `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any        `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int                   `json:"startLine"`
	StartColumn int                   `json:"startColumn,omitempty"`
	EndLine     int                   `json:"endLine,omitempty"`
	EndColumn   int                   `json:"endColumn,omitempty"`
	Snippet     *SARIFMultiformatText `json:"snippet,omitempty"`
}

// SARIFReporter writes a SARIF 2.1.0 log.
type SARIFReporter struct {
	opts Options
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	b := newSARIFBuilder(r.opts)
	if result != nil {
		for _, file := range result.Files {
			b.addFile(file)
		}
	}
	run := b.run()

	encoder := json.NewEncoder(r.opts.Writer)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	log := SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
	if err := encoder.Encode(log); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(run.Results), nil
}

// sarifBuilder accumulates one run. Rules are listed in first-seen order
// and results point at them by index.
type sarifBuilder struct {
	opts      Options
	rules     []SARIFRule
	ruleIndex map[string]int
	results   []SARIFResult
	failures  []SARIFNotification
}

func newSARIFBuilder(opts Options) *sarifBuilder {
	return &sarifBuilder{
		opts:      opts,
		rules:     []SARIFRule{},
		ruleIndex: make(map[string]int),
		results:   []SARIFResult{},
	}
}

func (b *sarifBuilder) addFile(file runner.FileOutcome) {
	artifact := SARIFArtifactLocation{URI: b.artifactURI(file.Path)}

	if file.Error != nil {
		b.failures = append(b.failures, SARIFNotification{
			Level:   "error",
			Message: SARIFMessage{Text: file.Error.Error()},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: artifact},
			}},
		})
		return
	}
	if file.Result == nil || file.Result.FileResult == nil {
		return
	}

	for i := range file.Result.Diagnostics {
		diag := &file.Result.Diagnostics[i]

		region := SARIFRegion{
			StartLine:   diag.StartLine,
			StartColumn: diag.StartColumn,
			EndLine:     diag.EndLine,
			EndColumn:   diag.EndColumn,
		}
		if diag.HasExcerpt() {
			region.Snippet = &SARIFMultiformatText{Text: diag.Excerpt}
		}

		b.results = append(b.results, SARIFResult{
			RuleID:    diag.RuleID,
			RuleIndex: b.rule(diag.RuleID, diag.RuleName, diag.Title),
			Level:     sarifLevel(diag.Severity),
			Message:   SARIFMessage{Text: diag.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: artifact, Region: &region},
			}},
		})
	}
}

// rule returns the index of id in the driver's rule list, adding it on
// first use. Registry metadata wins over the diagnostic's own labels.
func (b *sarifBuilder) rule(id, name, title string) int {
	if idx, ok := b.ruleIndex[id]; ok {
		return idx
	}

	rule := SARIFRule{ID: id, Name: name, ShortDescription: SARIFMultiformatText{Text: title}}
	if registered, ok := b.opts.registry().GetByID(id); ok {
		rule.Name = registered.Name()
		rule.ShortDescription.Text = registered.Title()
		rule.FullDescription = &SARIFMultiformatText{Text: registered.Description()}
		rule.DefaultConfig = &SARIFRuleConfig{Level: sarifLevel(registered.DefaultSeverity())}
		if tags := registered.Tags(); len(tags) > 0 {
			rule.Properties = map[string]any{"tags": tags}
		}
	}

	idx := len(b.rules)
	b.rules = append(b.rules, rule)
	b.ruleIndex[id] = idx
	return idx
}

func (b *sarifBuilder) run() SARIFRun {
	return SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           ToolName,
			Version:        b.opts.version(),
			InformationURI: ToolInformationURI,
			Rules:          b.rules,
		}},
		Invocations: []SARIFInvocation{{
			ExecutionSuccessful: len(b.failures) == 0,
			Notifications:       b.failures,
		}},
		Results: b.results,
	}
}

func (b *sarifBuilder) artifactURI(path string) string {
	if path == fsutil.StdinPath {
		return sarifStdinURI
	}
	return filepath.ToSlash(displayPath(path, b.opts.WorkingDir))
}

// sarifLevel maps a severity onto SARIF's error, warning and note levels.
func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
