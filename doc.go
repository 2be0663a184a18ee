// Package raypick turns 2D pointer input into DOM-style events on the nodes
// of a 3D scene graph.
//
// Each raw pointer event runs one synchronous cycle: the pointer is mapped to
// normalized device coordinates, a ray is cast from the active camera against
// the event-capable nodes, and the hits are compared with the previous
// cycle's to dispatch, in order, pointermissed, pointerleave, pointerout,
// pointerenter, pointerover and the event's own handler (click, pointermove,
// wheel and so on).
//
// # Quick start
//
// [Scene] is a ready-made owner. Give it a camera, add nodes with shapes and
// attach handlers through [Scene.SetProp] or [EventManager.On]:
//
//	scene := raypick.NewScene(800, 600, raypick.DefaultConfig())
//	scene.SetCamera(raypick.NewPerspectiveCamera(60, 800.0/600, 0.1, 100))
//
//	box := raypick.NewMesh("box", raypick.NewBox(1, 1, 1))
//	scene.Add(nil, box)
//	scene.SetProp(box, "onClick", func(e *raypick.Event) {
//		fmt.Println("clicked", e.Object.Name, "at", e.Point)
//	})
//
// Feed input through any [Surface]. [SampleSurface] synthesizes DOM-ordered
// events from per-tick samples and supports scripted injection; package
// ebitensurface polls Ebitengine input into one:
//
//	surface := raypick.NewSampleSurface(raypick.DefaultConfig())
//	conn := scene.Connect(surface)
//	defer conn.Disconnect()
//
// # Bubbling
//
// pointerover, pointerout and the primary handler bubble from the struck node
// up through its ancestors; [Event.StopPropagation] ends the current pass.
// pointerenter, pointerleave and pointermissed are delivered to each node on
// its own. A node marked blocking hides everything behind it from the ray.
//
// # Event lifetime
//
// One [Event] is built per cycle and reused across handlers. Its node fields
// are cleared when the cycle ends; copy what you need.
//
// ECS integration is available via the [Donburi] adapter in raypick/ecs.
//
// [Donburi]: https://github.com/yohamta/donburi
package raypick
