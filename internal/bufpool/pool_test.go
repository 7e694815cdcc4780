package bufpool

import "testing"

func TestGet_ReturnsEmptyBuffer(t *testing.T) {
	buf := Get()
	if len(buf) != 0 {
		t.Fatalf("len(Get()) = %d, want 0", len(buf))
	}
	if cap(buf) == 0 {
		t.Errorf("cap(Get()) = 0, want spare capacity")
	}
}

func TestPut_ClearsBuffer(t *testing.T) {
	buf := Get()
	buf = append(buf, 1, 2, 3)
	Put(buf)

	// Whatever comes back must be empty, reused or not.
	for i := 0; i < 4; i++ {
		if got := Get(); len(got) != 0 {
			t.Fatalf("Get() after Put has len %d, want 0", len(got))
		}
	}
}

func TestPut_IgnoresOversizedAndNil(t *testing.T) {
	Put(nil)
	Put(make([]byte, 0, maxCapacity+1))

	if got := Get(); cap(got) > maxCapacity {
		t.Errorf("pooled buffer cap = %d, want <= %d", cap(got), maxCapacity)
	}
}

func BenchmarkGetPut(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := Get()
		buf = append(buf, make([]byte, 256)...)
		Put(buf)
	}
}
