package dispatch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tim-timman/git-tools/internal/cmd"
	"github.com/tim-timman/git-tools/internal/discover"
)

// Result is the outcome of one repository's invocation.
type Result struct {
	Repo     discover.Repo
	ExitCode int
	Stdout   []byte
	Stderr   []byte

	// StartErr is set when the subprocess could not be started at all
	// (binary missing, repository path unusable). Exit status and output
	// are meaningless when set.
	StartErr error
}

// Options configures one dispatch round.
type Options struct {
	// GitPath is the git binary to invoke. Empty means "git".
	GitPath string

	// Jobs bounds parallel invocations. Values below 2 mean sequential.
	Jobs int
}

func (o Options) git() string {
	if o.GitPath == "" {
		return "git"
	}
	return o.GitPath
}

func (o Options) limit() int {
	if o.Jobs < 1 {
		return 1
	}
	return o.Jobs
}

// Run invokes argv once per repository and returns all results in repository
// order. When emit is non-nil it is called with each result, also in
// repository order, as soon as that result and all earlier ones are
// available; with sequential jobs this streams repo by repo.
//
// A canceled context stops scheduling new invocations and terminates running
// ones; already-finished results are still returned.
func Run(ctx context.Context, repos []discover.Repo, argv []string, opts Options, emit func(Result)) []Result {
	results := make([]Result, len(repos))
	ready := make([]chan struct{}, len(repos))
	for i := range ready {
		ready[i] = make(chan struct{})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.limit())

	go func() {
		for i, repo := range repos {
			g.Go(func() error {
				results[i] = runOne(ctx, repo, opts.git(), argv)
				close(ready[i])
				return nil
			})
		}
		g.Wait()
	}()

	for i := range repos {
		<-ready[i]
		if emit != nil {
			emit(results[i])
		}
	}
	return results
}

func runOne(ctx context.Context, repo discover.Repo, git string, argv []string) Result {
	res := Result{Repo: repo}
	cap, err := cmd.CaptureContext(ctx, repo.Path, git, argv...)
	if err != nil {
		res.StartErr = err
		return res
	}
	res.ExitCode = cap.ExitCode
	res.Stdout = cap.Stdout
	res.Stderr = cap.Stderr
	return res
}
