package scene

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/logger"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Culler toggles registry instances in and out of the world as the window
// moves. The registry itself never changes.
type Culler struct {
	window    Window
	instances []Instance
	live      mapset.Set[Instance]
}

func NewCuller(window Window, reg *Registry) *Culler {
	return &Culler{
		window:    window,
		instances: reg.Instances(),
		live:      mapset.New[Instance](),
	}
}

func (c *Culler) Window() Window {
	return c.window
}

// Sync materializes instances inside the window centered on (cx, cy) and
// removes the ones outside. Calling it twice with the same center changes
// nothing the second time.
func (c *Culler) Sync(w *ecs.World, cx, cy float64) (added, removed int) {
	for _, inst := range c.instances {
		cell := inst.cell()
		inside := c.window.Contains(cx, cy, cell.Pos.X, cell.Pos.Y)
		live := c.live.Has(inst)

		if live && !w.IsAlive(cell.Entity) {
			c.live.Remove(inst)
			cell.Entity = 0
			live = false
		}

		switch {
		case inside && !live:
			e, err := inst.materialize(w, c.window.Cell)
			if err != nil {
				logger.Log.WithError(err).WithFields(logrus.Fields{"row": cell.Row, "col": cell.Col}).Error("materialize failed")
				continue
			}
			cell.Entity = e
			c.live.Put(inst)
			added++
		case !inside && live:
			ecs.DestroyEntity(w, cell.Entity)
			cell.Entity = 0
			c.live.Remove(inst)
			removed++
		}
	}

	if added > 0 || removed > 0 {
		logger.Log.WithFields(logrus.Fields{
			"added":   added,
			"removed": removed,
			"live":    c.live.Size(),
		}).Debug("culling window updated")
	}
	return added, removed
}

// Clear removes every materialized instance.
func (c *Culler) Clear(w *ecs.World) {
	c.live.Each(func(inst Instance) {
		cell := inst.cell()
		ecs.DestroyEntity(w, cell.Entity)
		cell.Entity = 0
	})
	c.live = mapset.New[Instance]()
}

// Live reports how many instances are materialized.
func (c *Culler) Live() int {
	return c.live.Size()
}

// IsLive reports whether inst is currently materialized.
func (c *Culler) IsLive(inst Instance) bool {
	return c.live.Has(inst)
}
