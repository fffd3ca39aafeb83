package ecs

import (
	"testing"
)

// 测试组件类型定义
type testOpacityComponent struct {
	Value float64
}

type testTagComponent struct {
	Name string
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testOpacityComponent{Value: 0.5})

	comp, ok := GetComponent[*testOpacityComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if comp.Value != 0.5 {
		t.Errorf("Component data mismatch, expected 0.5, got %f", comp.Value)
	}

	// 值类型与指针类型是不同的组件
	if _, ok := GetComponent[testOpacityComponent](em, id); ok {
		t.Error("Value type should not match pointer component")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testOpacityComponent](em, id) {
		t.Error("Should not have component before adding")
	}

	AddComponent(em, id, &testOpacityComponent{})
	if !HasComponent[*testOpacityComponent](em, id) {
		t.Error("Should have component after adding")
	}

	RemoveComponent[*testOpacityComponent](em, id)
	if HasComponent[*testOpacityComponent](em, id) {
		t.Error("Should not have component after removing")
	}
}

func TestAddComponentToUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	AddComponent(em, EntityID(42), &testOpacityComponent{})
	if HasComponent[*testOpacityComponent](em, EntityID(42)) {
		t.Error("Unknown entity should not receive components")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testOpacityComponent{})

	// 标记删除后组件仍然存在
	em.DestroyEntity(id)
	if !HasComponent[*testOpacityComponent](em, id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()
	if HasComponent[*testOpacityComponent](em, id) {
		t.Error("Entity should be removed after RemoveMarkedEntities")
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", em.EntityCount())
	}
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()

	var both []EntityID
	for i := 0; i < 10; i++ {
		e := em.CreateEntity()
		AddComponent(em, e, &testOpacityComponent{Value: float64(i)})
		if i%2 == 0 {
			AddComponent(em, e, &testTagComponent{Name: "even"})
			both = append(both, e)
		}
	}

	all := GetEntitiesWith1[*testOpacityComponent](em)
	if len(all) != 10 {
		t.Fatalf("GetEntitiesWith1: got %d entities, want 10", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("结果应按 ID 升序: %v", all)
		}
	}

	got := GetEntitiesWith2[*testOpacityComponent, *testTagComponent](em)
	if len(got) != len(both) {
		t.Fatalf("GetEntitiesWith2: got %d, want %d", len(got), len(both))
	}
	for i := range got {
		if got[i] != both[i] {
			t.Errorf("GetEntitiesWith2[%d] = %d, want %d", i, got[i], both[i])
		}
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 3; i++ {
		em.CreateEntity()
	}
	em.Clear()
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount after Clear = %d, want 0", em.EntityCount())
	}
}
