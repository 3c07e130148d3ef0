package mesh

import (
	"fmt"
	"slices"
)

type objectKind int

const (
	kindVertexArray objectKind = iota
	kindVertexBuffer
	kindIndexBuffer
)

type fakeObject struct {
	kind   objectKind
	vao    uint32
	attrib VertexAttrib
	data   []byte
}

// fakeDevice is an in-memory Device. It hands out increasing ids, keeps a
// copy of every upload and can be told to fail the n-th allocation.
type fakeDevice struct {
	next    uint32
	allocs  int
	failAt  int
	live    map[uint32]fakeObject
	deleted []uint32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{live: make(map[uint32]fakeObject)}
}

func (d *fakeDevice) alloc(obj fakeObject) (uint32, error) {
	d.allocs++
	if d.failAt > 0 && d.allocs == d.failAt {
		return 0, fmt.Errorf("%w: injected failure at allocation %d", ErrDevice, d.allocs)
	}
	d.next++
	d.live[d.next] = obj
	return d.next, nil
}

func (d *fakeDevice) CreateVertexArray() (uint32, error) {
	return d.alloc(fakeObject{kind: kindVertexArray})
}

func (d *fakeDevice) CreateVertexBuffer(vao uint32, attrib VertexAttrib, data []byte) (uint32, error) {
	if _, ok := d.live[vao]; !ok {
		return 0, fmt.Errorf("%w: vertex array %d does not exist", ErrDevice, vao)
	}
	return d.alloc(fakeObject{kind: kindVertexBuffer, vao: vao, attrib: attrib, data: slices.Clone(data)})
}

func (d *fakeDevice) CreateIndexBuffer(vao uint32, data []byte) (uint32, error) {
	if _, ok := d.live[vao]; !ok {
		return 0, fmt.Errorf("%w: vertex array %d does not exist", ErrDevice, vao)
	}
	return d.alloc(fakeObject{kind: kindIndexBuffer, vao: vao, data: slices.Clone(data)})
}

func (d *fakeDevice) DeleteVertexArray(id uint32) {
	d.remove(id, func(k objectKind) bool { return k == kindVertexArray })
}

func (d *fakeDevice) DeleteBuffer(id uint32) {
	d.remove(id, func(k objectKind) bool { return k != kindVertexArray })
}

func (d *fakeDevice) remove(id uint32, kindOK func(objectKind) bool) {
	obj, ok := d.live[id]
	if !ok {
		panic(fmt.Sprintf("delete of unknown object %d", id))
	}
	if !kindOK(obj.kind) {
		panic(fmt.Sprintf("object %d deleted as wrong kind", id))
	}
	delete(d.live, id)
	d.deleted = append(d.deleted, id)
}

func (d *fakeDevice) liveCount() int {
	return len(d.live)
}
