package physics

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/chewxy/math32"
)

// collides reports whether the group masks of a and b allow a contact.
func collides(a, b *body) bool {
	return a.membership&b.filter != 0 && b.membership&a.filter != 0
}

// resolveContact separates two overlapping spheres and removes their approaching velocity.
// Friction opposes the tangential slip, capped by the Coulomb limit, and spins the bodies.
func resolveContact(a, b *body) {
	if a.radius <= 0 || b.radius <= 0 || !collides(a, b) {
		return
	}
	wa, wb := a.inverseMass(), b.inverseMass()
	sum := wa + wb
	if sum == 0 {
		return
	}

	d := b.position.Sub(a.position)
	dist := d.Len()
	penetration := a.radius + b.radius - dist
	if penetration <= 0 {
		return
	}
	n := common.Vec3{0, 1, 0}
	if dist > 0 {
		n = d.Scale(1 / dist)
	}

	a.position = a.position.Sub(n.Scale(penetration * wa / sum))
	b.position = b.position.Add(n.Scale(penetration * wb / sum))

	rel := b.linearVelocity.Sub(a.linearVelocity)
	vn := rel.Dot(n)
	if vn >= 0 {
		return
	}
	jn := -vn / sum
	a.linearVelocity = a.linearVelocity.Sub(n.Scale(jn * wa))
	b.linearVelocity = b.linearVelocity.Add(n.Scale(jn * wb))

	slip := rel.Sub(n.Scale(vn))
	speed := slip.Len()
	if speed > 0 {
		mu := (a.friction + b.friction) / 2
		jt := math32.Min(speed/sum, mu*jn)
		t := slip.Scale(1 / speed)
		a.linearVelocity = a.linearVelocity.Add(t.Scale(jt * wa))
		b.linearVelocity = b.linearVelocity.Sub(t.Scale(jt * wb))
		applySpin(a, n.Scale(a.radius), t.Scale(jt))
		applySpin(b, n.Scale(-b.radius), t.Scale(-jt))
	}

	if wa > 0 {
		a.wake()
	}
	if wb > 0 {
		b.wake()
	}
}

// applySpin adds the angular impulse of a tangential impulse applied at arm from the center,
// using the solid sphere inertia 2/5 m r^2.
func applySpin(b *body, arm, impulse common.Vec3) {
	w := b.inverseMass()
	if w == 0 || b.radius <= 0 {
		return
	}
	invInertia := w / (0.4 * b.radius * b.radius)
	b.angularVelocity = b.angularVelocity.Add(arm.Cross(impulse).Scale(invInertia))
}
