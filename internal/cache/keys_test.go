package cache

import "testing"

func TestHashBytesDeterministic(t *testing.T) {
	a := HashBytes([]byte("hello"))
	b := HashBytes([]byte("hello"))
	if a != b {
		t.Fatal("expected identical input to hash identically")
	}
	if a == HashBytes([]byte("world")) {
		t.Fatal("expected different input to hash differently")
	}
}

func TestHashStringMatchesHashBytes(t *testing.T) {
	if HashString("abc") != HashBytes([]byte("abc")) {
		t.Fatal("expected HashString and HashBytes to agree on equivalent input")
	}
}

func TestShapingKeyEquality(t *testing.T) {
	a := ShapingKey{TextHash: 1, FontHash: 2, FaceIndex: 0, ParamsHash: 3}
	b := ShapingKey{TextHash: 1, FontHash: 2, FaceIndex: 0, ParamsHash: 3}
	c := ShapingKey{TextHash: 1, FontHash: 2, FaceIndex: 1, ParamsHash: 3}

	cache := NewL1Cache[ShapingKey, string](4)
	cache.Insert(a, "shaped")
	if _, ok := cache.Get(b); !ok {
		t.Fatal("expected equal ShapingKey values to collide in a map")
	}
	if _, ok := cache.Get(c); ok {
		t.Fatal("expected a different FaceIndex to produce a distinct key")
	}
}
