package progress_test

import (
	"testing"

	"github.com/Berachem/reposcan/internal/progress"
	"github.com/stretchr/testify/require"
)

func TestFuncAdapter(t *testing.T) {
	var got []progress.Event
	var r progress.Reporter = progress.Func(func(ev progress.Event) {
		got = append(got, ev)
	})

	r.Report(progress.Event{Step: progress.StepCollecting, Percent: 15})
	r.Report(progress.Event{Step: progress.StepComplete, Percent: 100})

	require.Len(t, got, 2)
	require.Equal(t, "collecting", got[0].Step)
	require.Equal(t, 100, got[1].Percent)
}

func TestNopIsAReporter(t *testing.T) {
	var r progress.Reporter = progress.Nop{}
	r.Report(progress.Event{Step: progress.StepError})
}
