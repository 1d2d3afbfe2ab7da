package mmap

import (
	"os"
	"testing"
)

func TestMmapRoundTrip(t *testing.T) {
	data, err := Mmap(215123)
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 1
	data[len(data)-1] = 1

	data2, err := Mmap(os.Getpagesize())
	if err != nil {
		t.Fatal(err)
	}

	if err := Munmap(data); err != nil {
		t.Fatal(err)
	}
	if err := Munmap(data2); err != nil {
		t.Fatal(err)
	}
}
