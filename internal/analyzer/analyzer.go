package analyzer

import (
	"os"
	"time"

	"classcheck/internal/analyzer/checks"
	"classcheck/internal/config"
	"classcheck/internal/cpp"
	"classcheck/internal/models"
)

// Analyzer drives the defect checks over C/C++ translation units. Two
// token views of each unit exist: the memset check needs the raw view
// because only there is sizeof preserved, everything else runs on the
// simplified view.
type Analyzer struct {
	config           *config.Config
	rawChecks        []checks.Check
	simplifiedChecks []checks.Check
}

func NewAnalyzer(cfg *config.Config) *Analyzer {
	return &Analyzer{
		config: cfg,
		rawChecks: []checks.Check{
			checks.NewMemsetCheck(),
		},
		simplifiedChecks: []checks.Check{
			checks.NewConstructorCheck(),
			checks.NewOperatorEqCheck(),
			checks.NewPrivateFunctionCheck(),
			checks.NewOperatorEqRetRefThisCheck(),
			checks.NewThisSubtractionCheck(),
			checks.NewOperatorEqToSelfCheck(),
			checks.NewVirtualDestructorCheck(),
			checks.NewConstFunctionCheck(),
		},
	}
}

// AnalyzeFiles tokenizes and checks each file, collecting everything
// into one result. A file that cannot be read is skipped; analysis of
// the remaining files continues.
func (a *Analyzer) AnalyzeFiles(filenames []string) (*models.AnalysisResult, error) {
	startTime := time.Now()
	result := models.NewAnalysisResult()

	for _, filename := range filenames {
		source, err := os.ReadFile(filename)
		if err != nil {
			continue
		}
		result.Files = append(result.Files, filename)

		a.RunOnRaw(filename, cpp.Tokenize(string(source), 0), result)
		a.RunOnSimplified(filename, cpp.Tokenize(string(source), 0), result)
	}

	result.AnalysisDuration = time.Since(startTime).String()
	return result, nil
}

// RunOnRaw runs the checks that need the raw token view.
func (a *Analyzer) RunOnRaw(file string, tokens *cpp.Token, sink models.Sink) {
	a.run(a.rawChecks, file, tokens, sink)
}

// RunOnSimplified runs the checks that expect the simplified view.
func (a *Analyzer) RunOnSimplified(file string, tokens *cpp.Token, sink models.Sink) {
	a.run(a.simplifiedChecks, file, tokens, sink)
}

func (a *Analyzer) run(list []checks.Check, file string, tokens *cpp.Token, sink models.Sink) {
	ctx := checks.NewContext(file, tokens, a.config)
	for _, check := range list {
		for _, d := range check.Run(ctx) {
			sink.Report(d)
		}
	}
}

// GetCheckCount returns the number of registered checks.
func (a *Analyzer) GetCheckCount() int {
	return len(a.rawChecks) + len(a.simplifiedChecks)
}

// GetCheckNames returns the names of all registered checks.
func (a *Analyzer) GetCheckNames() []string {
	var names []string
	for _, c := range a.rawChecks {
		names = append(names, c.Name())
	}
	for _, c := range a.simplifiedChecks {
		names = append(names, c.Name())
	}
	return names
}
