package engine

import "testing"

func TestGameObjectRefGet(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Target")
	scene.AddGameObject(obj)

	var ref GameObjectRef
	ref.Set(obj)

	if !ref.IsValid() {
		t.Fatal("Set should make the reference valid")
	}
	if found := ref.Get(scene); found != obj {
		t.Errorf("Get() failed: expected %v, got %v", obj, found)
	}
}

func TestGameObjectRefGetNil(t *testing.T) {
	scene := NewScene("Test")

	if (GameObjectRef{}).Get(scene) != nil {
		t.Error("Get() with UID=0 should return nil")
	}
	if (GameObjectRef{UID: 99999}).Get(scene) != nil {
		t.Error("Get() with non-existent UID should return nil")
	}
	if (GameObjectRef{UID: 123}).Get(nil) != nil {
		t.Error("Get() with nil scene should return nil")
	}
}

func TestGameObjectRefClear(t *testing.T) {
	obj := NewGameObject("Target")
	ref := GameObjectRef{}
	ref.Set(obj)
	ref.Clear()
	if ref.IsValid() {
		t.Error("Clear should invalidate the reference")
	}

	ref.Set(obj)
	ref.Set(nil)
	if ref.UID != 0 {
		t.Errorf("Set(nil) should clear, got UID %d", ref.UID)
	}
}

func TestGameObjectRefAfterRemoval(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Platform")
	scene.AddGameObject(obj)

	ref := GameObjectRef{UID: obj.UID}
	scene.RemoveGameObject(obj)

	if ref.Get(scene) != nil {
		t.Error("Reference to a removed object should resolve to nil")
	}
}
