package interact_test

import (
	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravbox/internal/camera"
	"github.com/san-kum/gravbox/internal/interact"
	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/vec"
)

func click(screen vec.Vec2, modifiers ...interact.Action) *interact.Input {
	in := &interact.Input{Pointer: screen, Primary: interact.Button{Pressed: true, Held: true}}
	for _, m := range modifiers {
		in.Hold(m)
	}
	return in
}

func hold(screen vec.Vec2) *interact.Input {
	return &interact.Input{Pointer: screen, Primary: interact.Button{Held: true}}
}

func release(screen vec.Vec2) *interact.Input {
	return &interact.Input{Pointer: screen, Primary: interact.Button{Released: true}}
}

func press(a interact.Action) *interact.Input {
	in := &interact.Input{}
	in.Press(a)
	return in
}

var _ = Describe("Controller", func() {
	var (
		world *physics.World
		cam   camera.State
		ctrl  *interact.Controller
		sun   physics.Handle
	)

	BeforeEach(func() {
		world = physics.NewWorld(physics.DefaultParams())
		sun = world.Spawn(physics.Body{Pos: vec.New(400, 400), Vel: vec.New(20, 40), Mass: 100, Radius: 35})
		cam = camera.State{Pan: vec.New(100, 50), Zoom: 2}
		ctrl = interact.NewController(interact.DefaultSettings(), logr.Discard())
	})

	Describe("toggles", func() {
		It("flips pause and vectors on key press", func() {
			ctrl.Apply(press(interact.Pause), cam, world)
			Expect(ctrl.Paused).To(BeTrue())

			ctrl.Apply(press(interact.ToggleVectors), cam, world)
			Expect(ctrl.ShowVectors).To(BeTrue())

			ctrl.Apply(press(interact.Pause), cam, world)
			Expect(ctrl.Paused).To(BeFalse())
		})

		It("ignores keys that are only held", func() {
			in := &interact.Input{}
			in.Hold(interact.Pause)
			ctrl.Apply(in, cam, world)
			Expect(ctrl.Paused).To(BeFalse())
		})

		It("reports exit", func() {
			res := ctrl.Apply(press(interact.Exit), cam, world)
			Expect(res.Quit).To(BeTrue())
		})
	})

	Describe("editing through the camera", func() {
		It("adds a body at the world position under the pointer", func() {
			screen := cam.ToScreen(vec.New(-200, 30))
			res := ctrl.Apply(click(screen, interact.AddBody), cam, world)

			Expect(res.Added).NotTo(BeZero())
			b, ok := world.Get(res.Added)
			Expect(ok).To(BeTrue())
			Expect(b.Pos.X).To(BeNumerically("~", -200, 1e-9))
			Expect(b.Pos.Y).To(BeNumerically("~", 30, 1e-9))
			Expect(b.Mass).To(Equal(physics.DefaultNewBodyMass))
		})

		It("round-trips add and delete", func() {
			before := world.ActiveCount()
			screen := cam.ToScreen(vec.New(-200, 30))

			ctrl.Apply(click(screen, interact.AddBody), cam, world)
			Expect(world.ActiveCount()).To(Equal(before + 1))

			res := ctrl.Apply(click(screen, interact.DeleteBody), cam, world)
			Expect(res.Deleted).To(Equal(1))
			Expect(world.ActiveCount()).To(Equal(before))
		})

		It("adds mass to the clicked body", func() {
			res := ctrl.Apply(click(cam.ToScreen(vec.New(400, 400)), interact.AddMass), cam, world)
			Expect(res.Fed).To(Equal(1))

			b, _ := world.Get(sun)
			Expect(b.Mass).To(Equal(100 + physics.DefaultMassIncrement))
		})

		It("toggles the center body", func() {
			res := ctrl.Apply(click(cam.ToScreen(vec.New(400, 400)), interact.ToggleCenter), cam, world)
			Expect(res.Centered).To(Equal(sun))

			b, _ := world.Get(sun)
			Expect(b.Center).To(BeTrue())
		})

		It("applies only the highest-priority modifier", func() {
			screen := cam.ToScreen(vec.New(400, 400))
			res := ctrl.Apply(click(screen, interact.DeleteBody, interact.AddBody, interact.AddMass), cam, world)

			Expect(res.Added).NotTo(BeZero())
			Expect(res.Deleted).To(BeZero())
			Expect(res.Fed).To(BeZero())
			b, _ := world.Get(sun)
			Expect(b.Mass).To(Equal(100.0))
		})

		It("does nothing without a modifier while running", func() {
			res := ctrl.Apply(click(cam.ToScreen(vec.New(400, 400))), cam, world)
			Expect(res).To(Equal(interact.Result{}))
			_, dragging := ctrl.Dragging()
			Expect(dragging).To(BeFalse())
		})
	})

	Describe("velocity dragging", func() {
		var tip vec.Vec2

		BeforeEach(func() {
			ctrl.Paused = true
			ctrl.ShowVectors = true
			world.RefreshArrows(ctrl.Settings.VectorScale, 0)
			b, _ := world.Get(sun)
			tip = b.ArrowEnd
		})

		It("picks the arrow tip and commits the dragged velocity on release", func() {
			ctrl.Apply(click(cam.ToScreen(tip)), cam, world)
			h, dragging := ctrl.Dragging()
			Expect(dragging).To(BeTrue())
			Expect(h).To(Equal(sun))

			target := vec.New(450, 350)
			ctrl.Apply(hold(cam.ToScreen(target)), cam, world)

			b, _ := world.Get(sun)
			Expect(b.ArrowEnd.X).To(BeNumerically("~", 450, 1e-9))
			Expect(b.Vel).To(Equal(vec.New(20, 40)), "velocity changes only on release")

			res := ctrl.Apply(release(cam.ToScreen(target)), cam, world)
			Expect(res.Committed).To(Equal(sun))

			// (450-400)/0.5 = 100, and -(350-400)/0.5 = 100 after the Y flip.
			Expect(b.Vel.X).To(BeNumerically("~", 100, 1e-9))
			Expect(b.Vel.Y).To(BeNumerically("~", 100, 1e-9))
			_, dragging = ctrl.Dragging()
			Expect(dragging).To(BeFalse())
		})

		It("misses when the click is outside the pick radius", func() {
			ctrl.Apply(click(cam.ToScreen(tip.Add(vec.New(25, 0)))), cam, world)
			_, dragging := ctrl.Dragging()
			Expect(dragging).To(BeFalse())
		})

		It("measures the pick radius in world units", func() {
			// 15 world units from the tip is 30 pixels at zoom 2.
			offset := vec.New(15, 0)
			Expect(cam.ToScreen(tip.Add(offset)).Dist(cam.ToScreen(tip))).To(BeNumerically(">", interact.DefaultPickRadius))

			ctrl.Apply(click(cam.ToScreen(tip.Add(offset))), cam, world)
			h, dragging := ctrl.Dragging()
			Expect(dragging).To(BeTrue())
			Expect(h).To(Equal(sun))
		})

		It("lets modifiers win over dragging", func() {
			res := ctrl.Apply(click(cam.ToScreen(tip), interact.AddBody), cam, world)
			Expect(res.Added).NotTo(BeZero())
			_, dragging := ctrl.Dragging()
			Expect(dragging).To(BeFalse())
		})

		It("is disabled while running", func() {
			ctrl.Paused = false
			ctrl.Apply(click(cam.ToScreen(tip)), cam, world)
			_, dragging := ctrl.Dragging()
			Expect(dragging).To(BeFalse())
		})

		It("is abandoned when the simulation resumes", func() {
			ctrl.Apply(click(cam.ToScreen(tip)), cam, world)

			in := hold(cam.ToScreen(vec.New(0, 0)))
			in.Press(interact.Pause)
			res := ctrl.Apply(in, cam, world)

			Expect(res.Committed).To(BeZero())
			_, dragging := ctrl.Dragging()
			Expect(dragging).To(BeFalse())
			b, _ := world.Get(sun)
			Expect(b.Vel).To(Equal(vec.New(20, 40)))
		})

		It("keeps its target when compaction reshuffles slots", func() {
			doomed := world.Spawn(physics.Body{Pos: vec.New(-900, -900), Mass: 1, Radius: 10})
			moved := world.Spawn(physics.Body{Pos: vec.New(900, 900), Mass: 1, Radius: 10})
			world.RefreshArrows(ctrl.Settings.VectorScale, 0)

			ctrl.Apply(click(cam.ToScreen(vec.New(900, 900))), cam, world)
			h, _ := ctrl.Dragging()
			Expect(h).To(Equal(moved))

			world.Deactivate(doomed)
			world.Compact()
			Expect(world.At(1).ID).To(Equal(moved))

			res := ctrl.Apply(release(cam.ToScreen(vec.New(910, 900))), cam, world)
			Expect(res.Committed).To(Equal(moved))

			b, _ := world.Get(moved)
			Expect(b.Vel.X).To(BeNumerically("~", 0, 1e-9))
			s, _ := world.Get(sun)
			Expect(s.Vel).To(Equal(vec.New(20, 40)))
		})

		It("abandons the drag when its body is removed", func() {
			ctrl.Apply(click(cam.ToScreen(tip)), cam, world)

			world.Deactivate(sun)
			world.Compact()

			res := ctrl.Apply(release(cam.ToScreen(tip)), cam, world)
			Expect(res.Committed).To(BeZero())
			_, dragging := ctrl.Dragging()
			Expect(dragging).To(BeFalse())
		})
	})
})
