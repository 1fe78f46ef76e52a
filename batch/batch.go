package batch

import (
	"context"
	"runtime"

	"github.com/NethermindEth/t9n/metrics"
	"github.com/NethermindEth/t9n/t9n"
	"github.com/sourcegraph/conc/pool"
)

//go:generate mockgen -destination=../mocks/mock_validator.go -package=mocks github.com/NethermindEth/t9n/batch FileValidator
type FileValidator interface {
	ValidateFile(path string) (*t9n.Result, error)
}

type Outcome struct {
	Path   string
	Result *t9n.Result
	Err    error
}

func (o *Outcome) Verdict() metrics.Verdict {
	switch {
	case o.Err != nil || o.Result == nil:
		return metrics.VerdictRejected
	case o.Result.Valid:
		return metrics.VerdictValid
	default:
		return metrics.VerdictInvalid
	}
}

// Run validates the files at paths on at most workers goroutines, GOMAXPROCS
// when workers is not positive. Outcomes are in the order of paths. Files not
// yet started when ctx is done are skipped and the error is returned.
func Run(ctx context.Context, paths []string, validator FileValidator, workers int) ([]Outcome, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(paths))
	workerPool := pool.New().WithContext(ctx).WithMaxGoroutines(workers)
	for i, path := range paths {
		workerPool.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := validator.ValidateFile(path)
			outcomes[i] = Outcome{Path: path, Result: res, Err: err}
			return nil
		})
	}
	return outcomes, workerPool.Wait()
}

type Summary struct {
	Valid    int
	Invalid  int
	Rejected int
}

func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for i := range outcomes {
		switch outcomes[i].Verdict() {
		case metrics.VerdictValid:
			s.Valid++
		case metrics.VerdictInvalid:
			s.Invalid++
		default:
			s.Rejected++
		}
	}
	return s
}
