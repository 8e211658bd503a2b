package reporter

// Report is the serializable state of a reporter: running totals plus every
// suite, context, test and check in the order they were entered.
type Report struct {
	RunID  string        `json:"runId" yaml:"runId"`
	Totals Totals        `json:"totals" yaml:"totals"`
	Suites []SuiteRecord `json:"suites" yaml:"suites"`
}

type Totals struct {
	Tests    int `json:"tests" yaml:"tests"`
	Checks   int `json:"checks" yaml:"checks"`
	Failures int `json:"failures" yaml:"failures"`
	Errors   int `json:"errors" yaml:"errors"`
}

type SuiteRecord struct {
	Description string          `json:"description" yaml:"description"`
	Finished    bool            `json:"finished" yaml:"finished"`
	Contexts    []ContextRecord `json:"contexts" yaml:"contexts"`
}

type ContextRecord struct {
	Name     string             `json:"name" yaml:"name"`
	Strategy string             `json:"strategy" yaml:"strategy"`
	Finished bool               `json:"finished" yaml:"finished"`
	Errors   []PhaseErrorRecord `json:"errors,omitempty" yaml:"errors,omitempty"`
	Tests    []TestRecord       `json:"tests" yaml:"tests"`
}

type PhaseErrorRecord struct {
	Phase   string `json:"phase" yaml:"phase"`
	Message string `json:"message" yaml:"message"`
}

type TestRecord struct {
	What   string        `json:"what" yaml:"what"`
	Status TestStatus    `json:"status" yaml:"status"`
	Reason string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	Checks []CheckRecord `json:"checks" yaml:"checks"`
}

type CheckRecord struct {
	Description string `json:"description" yaml:"description"`
	Actual      string `json:"actual" yaml:"actual"`
	Expected    string `json:"expected" yaml:"expected"`
	Passed      bool   `json:"passed" yaml:"passed"`
	Anomaly     bool   `json:"anomaly,omitempty" yaml:"anomaly,omitempty"`
}

// Per-context counts derived from the records.
func (c ContextRecord) Counts() Totals {
	var t Totals
	for _, test := range c.Tests {
		t.Tests++
		t.Checks += len(test.Checks)
		for _, check := range test.Checks {
			if !check.Passed {
				t.Failures++
			}
		}
	}
	t.Errors = len(c.Errors)
	return t
}

func (r Report) clone() Report {
	out := Report{
		RunID:  r.RunID,
		Totals: r.Totals,
		Suites: make([]SuiteRecord, len(r.Suites)),
	}

	for i, s := range r.Suites {
		suite := s
		suite.Contexts = make([]ContextRecord, len(s.Contexts))
		for j, c := range s.Contexts {
			ctx := c
			ctx.Errors = append([]PhaseErrorRecord(nil), c.Errors...)
			ctx.Tests = make([]TestRecord, len(c.Tests))
			for k, t := range c.Tests {
				test := t
				test.Checks = append([]CheckRecord{}, t.Checks...)
				ctx.Tests[k] = test
			}
			suite.Contexts[j] = ctx
		}
		out.Suites[i] = suite
	}

	return out
}
