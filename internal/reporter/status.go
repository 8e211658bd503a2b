package reporter

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

type TestStatus int

const (
	TestStatusRunning TestStatus = iota
	TestStatusPassed
	TestStatusFailed
	TestStatusNotRun
)

func (ts TestStatus) String() string {
	switch ts {
	case TestStatusRunning:
		return "RUNNING"
	case TestStatusPassed:
		return "PASS"
	case TestStatusFailed:
		return "FAIL"
	case TestStatusNotRun:
		return "NOT RUN"
	default:
		return "UNKNOWN"
	}
}

func (ts TestStatus) ColorString() string {
	switch ts {
	case TestStatusPassed:
		return color.GreenString(ts.String())
	case TestStatusFailed:
		return color.RedString(ts.String())
	case TestStatusNotRun:
		return color.YellowString(ts.String())
	default:
		return ts.String()
	}
}

func (ts TestStatus) logLevel() logrus.Level {
	switch ts {
	case TestStatusFailed:
		return logrus.ErrorLevel
	case TestStatusNotRun:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

func (ts TestStatus) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

func (ts *TestStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "PASS":
		*ts = TestStatusPassed
	case "FAIL":
		*ts = TestStatusFailed
	case "NOT RUN":
		*ts = TestStatusNotRun
	default:
		*ts = TestStatusRunning
	}
	return nil
}

type SummaryStatus int

const (
	SummaryStatusOk SummaryStatus = iota
	SummaryStatusFailed
	SummaryStatusError
)

func (ss SummaryStatus) String() string {
	switch ss {
	case SummaryStatusOk:
		return "OK"
	case SummaryStatusFailed:
		return "FAILED"
	case SummaryStatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (ss SummaryStatus) ColorString() string {
	switch ss {
	case SummaryStatusOk:
		return color.GreenString(ss.String())
	case SummaryStatusFailed:
		return color.RedString(ss.String())
	case SummaryStatusError:
		return color.New(color.FgRed, color.Bold).Sprint(ss.String())
	default:
		return ss.String()
	}
}

func (ss SummaryStatus) IsBad() bool {
	return ss == SummaryStatusFailed || ss == SummaryStatusError
}
