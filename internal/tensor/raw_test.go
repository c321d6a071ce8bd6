package tensor

import "testing"

func TestNewRaw(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !r.Shape().Equal(Shape{2, 3}) {
		t.Errorf("shape = %v, want (2, 3)", r.Shape())
	}
	if r.NumElements() != 6 {
		t.Errorf("NumElements = %d, want 6", r.NumElements())
	}
	if r.ByteSize() != 24 {
		t.Errorf("ByteSize = %d, want 24", r.ByteSize())
	}
	if r.Device() != CPU {
		t.Errorf("Device = %v, want CPU", r.Device())
	}

	data := r.AsFloat32()
	if len(data) != 6 {
		t.Fatalf("AsFloat32 length = %d, want 6", len(data))
	}
	for i, v := range data {
		if v != 0 {
			t.Errorf("element %d = %v, want zero-initialized", i, v)
		}
	}
}

func TestNewRawRejectsUnknownShape(t *testing.T) {
	if _, err := NewRaw(Unknown(), Float32, CPU); err == nil {
		t.Error("expected error for unknown shape")
	}
	if _, err := NewRaw(Shape{2, 0}, Float32, CPU); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestView(t *testing.T) {
	buf := make([]byte, 4*4)
	r, err := View(buf, Shape{4}, Float32, CPU)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}

	r.AsFloat32()[2] = 1.5
	r2, err := View(buf, Shape{4}, Float32, CPU)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if r2.AsFloat32()[2] != 1.5 {
		t.Error("views over the same buffer should share memory")
	}
	if !r.SharesMemory(r2) {
		t.Error("SharesMemory should report true for views over one buffer")
	}

	if _, err := View(make([]byte, 7), Shape{4}, Float32, CPU); err == nil {
		t.Error("expected error for mismatched buffer size")
	}
}

func TestSharesMemoryDistinctBuffers(t *testing.T) {
	a, _ := NewRaw(Shape{4}, Float32, CPU)
	b, _ := NewRaw(Shape{4}, Float32, CPU)
	if a.SharesMemory(b) {
		t.Error("distinct allocations should not share memory")
	}
}

func TestAsFloat32PanicsOnWrongDType(t *testing.T) {
	r, _ := NewRaw(Shape{2}, Int32, CPU)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for dtype mismatch")
		}
	}()
	r.AsFloat32()
}
