package companion

// Reactions gates the one-shot reaction animation. A request while walking or
// already reacting is dropped; a dozing or sleeping companion wakes instead.
type Reactions struct {
	st     *State
	anim   *Animator
	drowse *Drowse
}

// Trigger starts the reaction and reports whether it did.
func (r *Reactions) Trigger() bool {
	if r.st.IsResting() {
		r.drowse.Wake()
		return false
	}
	if !r.st.Machine.Fire(EventReact) {
		return false
	}
	r.drowse.Reset()
	r.anim.Play(AnimReaction, r.complete)
	return true
}

func (r *Reactions) complete() {
	r.st.Machine.Fire(EventReactDone)
	r.anim.StartIdleLoop()
}
