package companion

// Drowse puts an undisturbed companion to sleep after enough idle loops and
// wakes it again after a number of sleep cycles. It needs all three sleep
// animations; without them it only restarts the idle loop.
type Drowse struct {
	st     *State
	anim   *Animator
	frames *Registry
	policy *SleepPolicy

	idleLoops   int
	sleepCycles int
}

func (d *Drowse) enabled() bool {
	return d.policy.AfterLoops > 0 && d.frames.Require(SleepAnimations...) == nil
}

// IdleLoops returns the number of idle loops finished since the last
// disturbance.
func (d *Drowse) IdleLoops() int {
	return d.idleLoops
}

// Reset forgets finished idle loops. Any walk, drag or reaction counts as a
// disturbance.
func (d *Drowse) Reset() {
	d.idleLoops = 0
}

// idleLoopDone is the idle loop's completion callback.
func (d *Drowse) idleLoopDone() {
	if d.st.Mode() == ModeIdle {
		d.idleLoops++
	}
	if d.enabled() && d.idleLoops >= d.policy.AfterLoops && d.st.Machine.Fire(EventDoze) {
		d.idleLoops = 0
		d.anim.PlayOnce(AnimIdleToSleep, d.fallAsleep)
		return
	}
	d.anim.StartIdleLoop()
}

func (d *Drowse) fallAsleep() {
	if !d.st.Machine.Fire(EventAsleep) {
		return
	}
	d.sleepCycles = 0
	d.anim.Play(AnimSleep, d.sleepCycleDone)
}

func (d *Drowse) sleepCycleDone() {
	d.sleepCycles++
	if d.policy.WakeAfterCycles > 0 && d.sleepCycles >= d.policy.WakeAfterCycles {
		d.Wake()
		return
	}
	d.anim.Play(AnimSleep, d.sleepCycleDone)
}

// Wake starts the wake-up sequence and reports whether the companion was
// dozing or asleep.
func (d *Drowse) Wake() bool {
	if !d.st.Machine.Fire(EventWake) {
		return false
	}
	d.anim.PlayOnce(AnimSleepToIdle, d.awake)
	return true
}

func (d *Drowse) awake() {
	d.st.Machine.Fire(EventAwake)
	d.anim.StartIdleLoop()
}
