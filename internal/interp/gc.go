package interp

// entry is the basket bookkeeping every collectable Object embeds: a
// hard reference count for external holders, basket membership, and
// the list of owned links this object keeps alive (spec.md 5.3).
type entry struct {
	basket    *Basket
	hardCount int
	owned     []Object
}

func (e *entry) basketEntry() *entry { return e }

// AddOwnedLink records that obj keeps target alive, promoting target
// into the same basket if it is not yet a member (spec.md 5.3's "Link
// set").
func (e *entry) addOwnedLink(b *Basket, target Object) {
	if target == nil {
		return
	}
	b.Add(target)
	e.owned = append(e.owned, target)
}

// Basket is a per-interpreter heap of collectable objects (spec.md
// 5.3). Membership is tracked with a set rather than the spec's
// intrusive doubly-linked list: Go has no manual pointer arithmetic to
// economize on, and a map gives the same O(1) Add/remove with less
// unsafe bookkeeping.
type Basket struct {
	members map[Object]struct{}
}

// NewBasket creates an empty basket.
func NewBasket() *Basket {
	return &Basket{members: make(map[Object]struct{})}
}

// Add inserts obj into the basket if it is not already a member,
// incrementing its hard count by one for the basket-owned reference
// (spec.md 5.3).
func (b *Basket) Add(obj Object) {
	e := obj.basketEntry()
	if _, ok := b.members[obj]; ok {
		return
	}
	b.members[obj] = struct{}{}
	e.basket = b
	e.hardCount++
}

// Retain increments obj's hard count for a new external holder (a
// Value being copied into a scope, argument, or field).
func (b *Basket) Retain(obj Object) {
	if obj == nil {
		return
	}
	b.Add(obj)
	obj.basketEntry().hardCount++
}

// Release decrements obj's hard count when a Value holding it is
// dropped (spec.md 5.3: "dropping a Value releases it").
func (b *Basket) Release(obj Object) {
	if obj == nil {
		return
	}
	obj.basketEntry().hardCount--
}

// Link assigns target into a slot owned by owner, ensuring both are
// members of the same basket (spec.md 5.3's "Link set").
func (b *Basket) Link(owner Object, target Object) {
	b.Add(owner)
	owner.basketEntry().addOwnedLink(b, target)
}

// Collect runs a mark-and-sweep over hard-rooted objects: anything
// whose hard count exceeds its basket-owned reference (i.e. has an
// external holder) is a root; reachability follows owned links.
// Unmarked objects are dropped from the basket (spec.md 5.3).
func (b *Basket) Collect() {
	marked := make(map[Object]bool, len(b.members))
	var stack []Object
	for obj := range b.members {
		if obj.basketEntry().hardCount > 1 {
			stack = append(stack, obj)
			marked[obj] = true
		}
	}
	for len(stack) > 0 {
		obj := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, owned := range obj.basketEntry().owned {
			if !marked[owned] {
				marked[owned] = true
				stack = append(stack, owned)
			}
		}
	}
	for obj := range b.members {
		if !marked[obj] {
			delete(b.members, obj)
		}
	}
}

// Purge unconditionally empties the basket, used at interpreter
// shutdown (spec.md 5.3).
func (b *Basket) Purge() {
	b.members = make(map[Object]struct{})
}

// Size reports the number of objects currently held, for tests and
// diagnostics.
func (b *Basket) Size() int { return len(b.members) }
