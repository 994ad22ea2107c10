package vktriangle

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// submission is one queue submit guarded by a fence, together with the
// semaphores it consumed or signalled.
type submission struct {
	fence      vk.Fence
	semaphores []vk.Semaphore
	done       bool
}

type retired struct {
	after   *submission
	destroy func()
}

// FenceManager keeps track of fences which in turn are used to keep track of GPU progress.
// Submissions are only marked done in the order they were tracked, so a done
// submission implies every earlier one is done as well. The manager is not
// thread-safe.
type FenceManager struct {
	device      vk.Device
	submissions []*submission
	retired     []retired

	// signaled polls a fence without blocking, wait blocks on a set of
	// fences, and free destroys the fence and semaphores of a finished submission.
	signaled          func(*submission) bool
	wait              func([]*submission) error
	free              func(*submission)
	destroySemaphores func([]vk.Semaphore)
}

func NewFenceManager(device vk.Device) *FenceManager {
	f := &FenceManager{
		device: device,
	}
	f.signaled = func(sub *submission) bool {
		return vk.GetFenceStatus(device, sub.fence) == vk.Success
	}
	f.wait = func(subs []*submission) error {
		fences := make([]vk.Fence, 0, len(subs))
		for _, sub := range subs {
			fences = append(fences, sub.fence)
		}
		ret := vk.WaitForFences(device, uint32(len(fences)), fences, vk.True, vk.MaxUint64)
		if isError(ret) {
			return errors.Wrap(NewError(ret), "wait for fences")
		}
		return nil
	}
	f.destroySemaphores = func(semaphores []vk.Semaphore) {
		for _, sem := range semaphores {
			vk.DestroySemaphore(device, sem, nil)
		}
	}
	f.free = func(sub *submission) {
		vk.DestroyFence(device, sub.fence, nil)
		f.destroySemaphores(sub.semaphores)
	}
	return f
}

func (f *FenceManager) NewFence() (vk.Fence, error) {
	var fence vk.Fence
	ret := vk.CreateFence(f.device, &vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}, nil, &fence)
	if isError(ret) {
		return vk.NullFence, NewError(ret)
	}
	return fence, nil
}

func (f *FenceManager) NewSemaphore() (vk.Semaphore, error) {
	var sem vk.Semaphore
	ret := vk.CreateSemaphore(f.device, &vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}, nil, &sem)
	if isError(ret) {
		return vk.NullSemaphore, NewError(ret)
	}
	return sem, nil
}

// Track takes ownership of a submitted fence and the semaphores the submission used.
func (f *FenceManager) Track(fence vk.Fence, semaphores []vk.Semaphore) *submission {
	sub := &submission{fence: fence, semaphores: semaphores}
	f.submissions = append(f.submissions, sub)
	return sub
}

// Retire schedules destroy to run once everything submitted so far has
// completed. With nothing outstanding it runs immediately.
func (f *FenceManager) Retire(destroy func()) {
	for i := len(f.submissions) - 1; i >= 0; i-- {
		if !f.submissions[i].done {
			f.retired = append(f.retired, retired{after: f.submissions[i], destroy: destroy})
			return
		}
	}
	destroy()
}

// Discard destroys semaphores that were never handed to a submission.
func (f *FenceManager) Discard(semaphores []vk.Semaphore) {
	if len(semaphores) > 0 {
		f.destroySemaphores(semaphores)
	}
}

// Collect polls outstanding fences without blocking and frees whatever finished.
func (f *FenceManager) Collect() {
	for _, sub := range f.submissions {
		if sub.done {
			continue
		}
		if !f.signaled(sub) {
			// Stop at the first pending fence to keep completion in order.
			break
		}
		f.finish(sub)
	}
	f.sweep()
}

// Wait blocks until every listed submission has completed.
func (f *FenceManager) Wait(subs []*submission) error {
	var pending []*submission
	for _, sub := range subs {
		if !sub.done {
			pending = append(pending, sub)
		}
	}
	if len(pending) > 0 {
		if err := f.wait(pending); err != nil {
			return err
		}
	}
	f.Collect()
	return nil
}

// Destroy waits for all outstanding work and frees everything still tracked.
func (f *FenceManager) Destroy() {
	if err := f.Wait(f.submissions); err != nil {
		// Device lost: nothing will signal, free unconditionally.
		f.finishAll()
	}
	for _, r := range f.retired {
		r.destroy()
	}
	f.retired = nil
}

func (f *FenceManager) finishAll() {
	for _, sub := range f.submissions {
		if !sub.done {
			f.finish(sub)
		}
	}
	f.sweep()
}

func (f *FenceManager) finish(sub *submission) {
	f.free(sub)
	sub.fence = vk.NullFence
	sub.semaphores = nil
	sub.done = true
}

func (f *FenceManager) sweep() {
	pending := f.retired[:0]
	for _, r := range f.retired {
		if r.after.done {
			r.destroy()
			continue
		}
		pending = append(pending, r)
	}
	f.retired = pending

	live := f.submissions[:0]
	for _, sub := range f.submissions {
		if !sub.done {
			live = append(live, sub)
		}
	}
	f.submissions = live
}

// Outstanding reports the number of submissions not yet known to be complete.
func (f *FenceManager) Outstanding() int {
	return len(f.submissions)
}
