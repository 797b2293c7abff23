package protocol

import "testing"

func TestSliceInputBuffer(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	buf := NewSliceInputBuffer(data)

	if buf.Available() != 5 {
		t.Errorf("Expected 5 bytes available, got %d", buf.Available())
	}

	bufData := buf.Data()
	if len(bufData) != 5 {
		t.Errorf("Expected 5 bytes in data, got %d", len(bufData))
	}

	buf.Pop(2)
	if buf.Available() != 3 {
		t.Errorf("After popping 2, expected 3 bytes available, got %d", buf.Available())
	}

	bufData = buf.Data()
	if len(bufData) != 3 || bufData[0] != 3 {
		t.Errorf("After popping 2, expected first byte to be 3, got %d", bufData[0])
	}
}

func TestFifoBuffer(t *testing.T) {
	fifo := NewFifoBuffer(10)

	if !fifo.IsEmpty() {
		t.Error("New FIFO should be empty")
	}

	if fifo.Available() != 0 {
		t.Errorf("Empty FIFO should have 0 available, got %d", fifo.Available())
	}

	// Write some data
	data := []byte{1, 2, 3, 4, 5}
	written := fifo.Write(data)

	if written != 5 {
		t.Errorf("Expected to write 5 bytes, wrote %d", written)
	}

	if fifo.Available() != 5 {
		t.Errorf("Expected 5 bytes available, got %d", fifo.Available())
	}

	// Read some data
	readBuf := make([]byte, 3)
	read := fifo.Read(readBuf)

	if read != 3 {
		t.Errorf("Expected to read 3 bytes, read %d", read)
	}

	if readBuf[0] != 1 || readBuf[1] != 2 || readBuf[2] != 3 {
		t.Errorf("Read data mismatch: got %v", readBuf)
	}

	if fifo.Available() != 2 {
		t.Errorf("After reading 3, expected 2 available, got %d", fifo.Available())
	}

	// Test Pop
	fifo.Pop(1)
	if fifo.Available() != 1 {
		t.Errorf("After popping 1, expected 1 available, got %d", fifo.Available())
	}

	// Test wrap-around
	fifo.Reset()
	bigData := make([]byte, 12)
	for i := range bigData {
		bigData[i] = byte(i)
	}
	written = fifo.Write(bigData)
	if written != 9 { // Buffer size is 10, can only store 9 (one slot reserved)
		t.Errorf("Expected to write 9 bytes to size-10 FIFO, wrote %d", written)
	}
}

func TestFifoBufferWrapAround(t *testing.T) {
	fifo := NewFifoBuffer(5)

	// Fill buffer
	fifo.Write([]byte{1, 2, 3, 4})

	// Read some
	readBuf := make([]byte, 2)
	fifo.Read(readBuf)

	// Write more (will wrap around)
	written := fifo.Write([]byte{5, 6})
	if written != 2 {
		t.Errorf("Expected to write 2 bytes, wrote %d", written)
	}

	// Verify order
	allData := make([]byte, 4)
	read := fifo.Read(allData)
	if read != 4 {
		t.Errorf("Expected to read 4 bytes, read %d", read)
	}
	if allData[0] != 3 || allData[1] != 4 || allData[2] != 5 || allData[3] != 6 {
		t.Errorf("Wrap-around data mismatch: got %v", allData)
	}
}

func TestFifoBufferPushFull(t *testing.T) {
	fifo := NewFifoBuffer(3)

	if !fifo.Push('N') || !fifo.Push('F') {
		t.Fatal("Push into non-full FIFO should succeed")
	}
	if fifo.Push('P') {
		t.Error("Push into full FIFO should fail")
	}
	if fifo.Free() != 0 {
		t.Errorf("Expected 0 free, got %d", fifo.Free())
	}
}

func TestFifoBufferDataWrapped(t *testing.T) {
	fifo := NewFifoBuffer(4)

	fifo.Write([]byte("xxO"))
	fifo.Pop(2)
	fifo.Write([]byte("FF"))

	if got := string(fifo.Data()); got != "OFF" {
		t.Errorf("Wrapped Data() = %q, want %q", got, "OFF")
	}
}
