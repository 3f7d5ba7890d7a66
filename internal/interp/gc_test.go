package interp

import "testing"

func TestBasketAddIsIdempotent(t *testing.T) {
	b := NewBasket()
	a := NewArray(b, nil)
	if b.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", b.Size())
	}
	b.Add(a)
	if b.Size() != 1 {
		t.Fatalf("re-Add changed Size() to %d", b.Size())
	}
}

func TestBasketCollectDropsUnreachable(t *testing.T) {
	b := NewBasket()
	NewArray(b, nil)
	if b.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", b.Size())
	}
	b.Collect()
	if b.Size() != 0 {
		t.Fatalf("Size() after Collect() = %d, want 0", b.Size())
	}
}

func TestBasketCollectKeepsHardRooted(t *testing.T) {
	b := NewBasket()
	a := NewArray(b, nil)
	b.Retain(a)
	b.Collect()
	if b.Size() != 1 {
		t.Fatalf("Size() after Collect() = %d, want 1 (hard-rooted)", b.Size())
	}
}

func TestBasketLinkKeepsNestedContainerAlive(t *testing.T) {
	b := NewBasket()
	inner := NewArray(b, nil)
	outer := NewArray(b, []Value{inner})
	b.Retain(outer)
	b.Collect()
	if b.Size() != 2 {
		t.Fatalf("Size() after Collect() = %d, want 2 (outer + linked inner)", b.Size())
	}
}

func TestBasketCollectDropsLinkedChildWhenOwnerDies(t *testing.T) {
	b := NewBasket()
	inner := NewArray(b, nil)
	NewArray(b, []Value{inner})
	b.Collect()
	if b.Size() != 0 {
		t.Fatalf("Size() after Collect() = %d, want 0", b.Size())
	}
}

func TestDictSetLinksContainedObject(t *testing.T) {
	b := NewBasket()
	d := NewDict(b)
	child := NewDict(b)
	d.Set("child", child)
	b.Retain(d)
	b.Collect()
	if b.Size() != 2 {
		t.Fatalf("Size() after Collect() = %d, want 2 (dict + linked child)", b.Size())
	}
}

func TestKeyValueLinksContainedObject(t *testing.T) {
	b := NewBasket()
	child := NewArray(b, nil)
	kv := NewKeyValue(b, "k", child)
	b.Retain(kv)
	b.Collect()
	if b.Size() != 2 {
		t.Fatalf("Size() after Collect() = %d, want 2 (keyvalue + linked child)", b.Size())
	}
}

func TestScopeDeclareRootsObjectAgainstCollect(t *testing.T) {
	b := NewBasket()
	root := NewRootScope(b)
	root.Declare("a", NewArray(b, nil))
	b.Collect()
	if b.Size() != 1 {
		t.Fatalf("Size() after Collect() = %d, want 1 (variable still in scope)", b.Size())
	}
}

func TestScopeSetReleasesReplacedValue(t *testing.T) {
	b := NewBasket()
	root := NewRootScope(b)
	root.Declare("a", NewArray(b, nil))
	root.Set("a", Int(1))
	b.Collect()
	if b.Size() != 0 {
		t.Fatalf("Size() after Collect() = %d, want 0 (old array no longer referenced)", b.Size())
	}
}

func TestScopeWithoutBasketDoesNotPanic(t *testing.T) {
	scope := NewScope()
	scope.Declare("a", NewArray(NewBasket(), nil))
	if !scope.Set("a", Int(1)) {
		t.Fatal("Set on declared name should succeed")
	}
}

func TestBasketPurgeEmptiesRegardlessOfRoots(t *testing.T) {
	b := NewBasket()
	a := NewArray(b, nil)
	b.Retain(a)
	b.Purge()
	if b.Size() != 0 {
		t.Fatalf("Size() after Purge() = %d, want 0", b.Size())
	}
}
