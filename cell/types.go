package cell

// staleVersion marks a Link that was carried over from an earlier tracking
// pass and has not been reconfirmed in the current one. Links still carrying
// it when the pass ends are detached from both lists.
const staleVersion = -1

type subscriberFlags uint8

const (
	fActive subscriberFlags = 1 << iota
	fRunning
	fTracking
	fNotified
	fDirty
	fAllowRecurse
)

// Link is one edge of the bipartite dependency graph: a single Cell observed
// by a single Subscriber. It sits in two intrusive doubly-linked lists at
// once, the subscriber's ordered dependency list (prevDep/nextDep, ordered
// by last access) and the cell's subscriber list (prevSub/nextSub).
type Link struct {
	version int

	dep *Cell
	sub Subscriber

	prevDep, nextDep *Link
	prevSub, nextSub *Link

	// prevActiveLink holds the cell's previous activeLink while this link's
	// subscriber is being evaluated, so nested evaluations can restore it.
	prevActiveLink *Link
}

// Dep returns the cell this link observes.
func (l *Link) Dep() *Cell { return l.dep }

// Sub returns the subscriber this link belongs to.
func (l *Link) Sub() Subscriber { return l.sub }

type subscriberNode struct {
	deps, depsTail *Link
	flags          subscriberFlags
	next           Subscriber // batch queue linkage
}

// Subscriber is anything that can observe cells: it carries an ordered
// dependency list plus bookkeeping flags, and is notified when one of its
// cells triggers. Effects and computeds are the two implementations; the
// interface is not implementable outside this package.
type Subscriber interface {
	node() *subscriberNode

	// Notify reports the trigger of one of the subscriber's cells. A true
	// result means the subscriber is itself a derived cell whose own
	// subscribers must be notified in turn.
	Notify() bool
}

// derived is a Subscriber that owns an output cell (a computed).
type derived interface {
	Subscriber
	ownerCell() *Cell
	refresh()
}
