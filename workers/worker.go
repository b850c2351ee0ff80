// Package workers runs a one-shot seeder/task pool: a single seeder
// goroutine feeds work into some shared channel while WorkCount task
// goroutines drain it, and Run blocks until all of them finish.
package workers

import (
	"sync"

	"github.com/marcosfpr/bridge/logx"
)

// JobsRunner describes one seeder/task fan-out. Task and Seeder are
// each called with the WaitGroup already incremented for their own
// goroutine — they must not call group.Add themselves, only
// group.Done (typically via defer).
type JobsRunner struct {
	WorkCount int
	Task      func(group *sync.WaitGroup, no int)
	Seeder    func(group *sync.WaitGroup)
}

func (jr *JobsRunner) Run() {
	wg := new(sync.WaitGroup)
	if jr.Seeder != nil {
		wg.Add(1)
		go jr.Seeder(wg)
	}
	for no := 0; no < jr.WorkCount; no++ {
		wg.Add(1)
		go jr.Task(wg, no)
	}
	wg.Wait()
	logx.Debugf("workers: %d tasks done", jr.WorkCount)
}

// RunJobs runs a JobsRunner with the given worker count, task and
// seeder and blocks until every goroutine has called group.Done.
func RunJobs(workerCount int, task func(group *sync.WaitGroup, no int), seeder func(group *sync.WaitGroup)) {
	jr := JobsRunner{WorkCount: workerCount, Task: task, Seeder: seeder}
	jr.Run()
}
