package utils

import (
	"runtime"
	"sync"

	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// ParallelFactor is the default number of worker groups.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

type (
	// BeforeParallelGroupWorkFunc executes before any work starts with the calculated group count.
	BeforeParallelGroupWorkFunc func(numGroups int)
	// MemberWorkFunc runs for each work item (member) of a group.
	MemberWorkFunc func(memberNum, workNum int) error
	// GroupWorkDoneFunc runs when a single group's work is done; helpful for merge stages.
	GroupWorkDoneFunc func(groupNum int)
	// GroupWorkFunc runs to determine what work members should do, if any.
	GroupWorkFunc func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc)
)

// GroupWorkParallel splits totalSize work items into contiguous groups and
// runs each group on its own goroutine. Member errors are collected and
// returned merged once every group has finished.
func GroupWorkParallel(totalSize, numGroups int, before BeforeParallelGroupWorkFunc, groupWork GroupWorkFunc) error {
	if numGroups <= 0 {
		numGroups = ParallelFactor
	}
	if numGroups > totalSize {
		numGroups = totalSize
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups
	if before != nil {
		before(numGroups)
	}

	var (
		mu      sync.Mutex
		allErrs error
		wait    sync.WaitGroup
	)
	wait.Add(numGroups)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		groupNumCopy := groupNum
		goutils.PanicCapturingGo(func() {
			defer wait.Done()
			groupNum := groupNumCopy

			thisGroupSize := groupSize
			from := groupSize * groupNum
			if groupNum == numGroups-1 {
				thisGroupSize += extra
			}
			to := from + thisGroupSize
			memberWork, groupWorkDone := groupWork(groupNum, thisGroupSize, from, to)
			if memberWork != nil {
				memberNum := 0
				for workNum := from; workNum < to; workNum++ {
					if err := memberWork(memberNum, workNum); err != nil {
						mu.Lock()
						allErrs = multierr.Combine(allErrs, err)
						mu.Unlock()
					}
					memberNum++
				}
			}
			if groupWorkDone != nil {
				groupWorkDone(groupNum)
			}
		})
	}
	wait.Wait()
	return allErrs
}
