package scene

import "fmt"

// builder accumulates meshes for a scene
type builder struct {
	meshes []*Mesh
}

func (b *builder) box(name string, cx, baseY, cz, w, h, d float64, col string) {
	b.meshes = append(b.meshes, Box(name, cx, baseY, cz, w, h, d, mustNamed(col)))
}

func (b *builder) roof(name string, cx, baseY, cz, w, peak, d float64, ridge Ridge, col string) {
	b.meshes = append(b.meshes, PrismRoof(name, cx, baseY, cz, w, peak, d, ridge, mustNamed(col)))
}

// house adds walls, a roof, a front door and two front windows
func (b *builder) house(name string, x, z float64, wall, roof string) {
	b.box(name+"/walls", x, 0, z, 5, 2.5, 5, wall)
	b.roof(name+"/roof", x, 2.5, z, 5.4, 1.3, 5.4, RidgeZ, roof)

	front := z + 2.51
	b.box(name+"/door", x, 0, front, 1.0, 1.8, 0.1, "darkgreen")
	b.box(name+"/window-left", x-1.25, 0.5, front, 1.0, 1.0, 0.1, "lightblue")
	b.box(name+"/window-right", x+1.25, 0.5, front, 1.0, 1.0, 0.1, "lightblue")
}

// shop adds a flat-roofed store with a sign, two display windows and a door
func (b *builder) shop(name string, x, z float64, wall string) {
	const wallHeight = 3.0
	b.box(name+"/walls", x, 0, z, 7, wallHeight, 6, wall)
	b.box(name+"/roof", x, wallHeight, z, 7.4, 0.2, 6.4, "dimgray")

	front := z + 3.0
	b.box(name+"/sign", x, 3.5, front, 4, 0.8, 0.1, "wheat")
	b.box(name+"/display-left", x-2, 0.5, front+0.01, 2.5, 2.0, 0.1, "cyan")
	b.box(name+"/display-right", x+2, 0.5, front+0.01, 2.5, 2.0, 0.1, "cyan")
	b.box(name+"/door", x, 0, front+0.01, 1.2, 2.2, 0.1, "black")
}

func (b *builder) tree(name string, x, z float64) {
	b.box(name+"/trunk", x, 0, z, 0.5, 1.5, 0.5, "saddlebrown")
	b.roof(name+"/canopy", x, 1.5, z, 2.5, 3, 2.5, RidgeZ, "forestgreen")
}

// Suburb builds the default neighbourhood: a house with porch, chimney and
// garage, streets, neighbouring houses, shops, trees and an origin marker
func Suburb() []*Mesh {
	b := &builder{}

	// Main house
	b.house("home", 0, 0, "saddlebrown", "darkred")
	b.box("home/porch", 0, 0, 2.8, 2.0, 0.1, 1.5, "tan")
	b.box("home/post-left", -0.8, 0, 3.4, 0.2, 2.0, 0.2, "tan")
	b.box("home/post-right", 0.8, 0, 3.4, 0.2, 2.0, 0.2, "tan")
	b.box("home/chimney", 1.5, 2.0, -1.5, 0.8, 2.5, 0.8, "gray")
	b.box("garage/walls", 4.25, 0, 0, 3.5, 2.0, 4.5, "saddlebrown")
	b.roof("garage/roof", 4.25, 2.0, 0, 3.9, 1.0, 4.9, RidgeZ, "darkred")
	b.box("garage/door", 4.25, 0, 2.26, 2.8, 1.8, 0.1, "white")

	// Driveway and footpath
	b.box("driveway", 4.25, 0.02, 5.25, 3.0, 0, 5.5, "gray")
	b.box("footpath", 0, 0.02, 5.0, 1.2, 0, 5.0, "lightgray")

	// Streets
	b.box("street/main", 0, 0.01, 8, 100, 0, 4, "dimgray")
	b.box("street/cross", -20, 0.01, 8, 4, 0, 40, "dimgray")
	for i := -15; i <= 15; i++ {
		b.box(fmt.Sprintf("street/stripe%+d", i), float64(i*5), 0.02, 8, 2, 0, 0.2, "yellow")
	}

	// Neighbours across the street
	neighbours := []struct {
		x          float64
		wall, roof string
	}{
		{-15, "tan", "black"},
		{-7, "indianred", "maroon"},
		{15, "goldenrod", "chocolate"},
	}
	for _, n := range neighbours {
		name := fmt.Sprintf("neighbour%+g", n.x)
		b.house(name, n.x, 15, n.wall, n.roof)
		b.box(name+"/footpath", n.x, 0.02, 11.5, 1.2, 0, 3, "lightgray")
	}

	// Shops on the cross street
	b.shop("shop-west", -25, 8, "firebrick")
	b.shop("shop-far-west", -33, 8, "firebrick")

	for i, p := range [][2]float64{{-5, 5}, {5, 5}, {-12, 12}, {12, 12}, {-20, 10}} {
		b.tree(fmt.Sprintf("tree%d", i), p[0], p[1])
	}

	b.box("origin", 0, 0, 0, 1, 0.1, 0.1, "red")

	return b.meshes
}
