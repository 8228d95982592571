package lifecycle

// Lifecycle is the component-lifecycle interface the helpers depend on.
type Lifecycle interface {
	// OnMount registers fn to run once the component has mounted.
	OnMount(fn func())

	// OnUnmount registers fn to run when the component unmounts.
	OnUnmount(fn func())

	// Stable returns the value held in the component's next hook slot.
	// On the first render the slot is filled with init(); later renders
	// return that same value without calling init.
	Stable(init func() any) any
}
