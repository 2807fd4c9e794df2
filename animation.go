package marquee

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type tweenPart struct {
	tween *gween.Tween
	field *float64
}

// TweenGroup drives one or more translation axes of a Node with gween
// tweens sharing a duration and easing. Each Update writes the eased values
// straight into the node and marks it dirty. A group whose node has been
// disposed finishes without writing. gween tweens in float32, so written
// values carry float32 rounding (one tick of the stage scroll reads
// -0.013333333656, not -0.0133...); compare offsets with a tolerance.
type TweenGroup struct {
	parts  []tweenPart
	target *Node
	Done   bool
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc, fields []*float64, targets []float64) *TweenGroup {
	g := &TweenGroup{target: node, parts: make([]tweenPart, len(fields))}
	for i, f := range fields {
		g.parts[i] = tweenPart{
			tween: gween.New(float32(*f), float32(targets[i]), duration, fn),
			field: f,
		}
	}
	return g
}

// Update advances the group by dt seconds.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsDisposed() {
		g.Done = true
		return
	}
	done := true
	for _, p := range g.parts {
		v, finished := p.tween.Update(dt)
		*p.field = float64(v)
		done = done && finished
	}
	g.Done = done
	g.target.MarkDirty()
}

// TweenPosition moves node to (x, y, z) over duration seconds.
func TweenPosition(node *Node, x, y, z float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		[]*float64{&node.X, &node.Y, &node.Z}, []float64{x, y, z})
}

// TweenX moves node along X only. The stage scroll is a linear TweenX
// toward the recycle threshold.
func TweenX(node *Node, x float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, []*float64{&node.X}, []float64{x})
}
