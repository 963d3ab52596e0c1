package ebitengfx

// nearDistance returns the signed distance of a clip-space vertex from the near plane (z = -w); vertices in front of
// the plane are positive.
func nearDistance(v VertexOutput) float32 {
	return v.Clip[2] + v.Clip[3]
}

func lerpVertex(a, b VertexOutput, t float32) VertexOutput {
	return VertexOutput{
		Clip:      a.Clip.Add(b.Clip.Sub(a.Clip).Mul(t)),
		Color:     a.Color.Add(b.Color.Sub(a.Color).Mul(t)),
		TexCoords: a.TexCoords.Add(b.TexCoords.Sub(a.TexCoords).Mul(t)),
	}
}

// outside reports whether all three vertices lie beyond the same side of the view volume, so the triangle can't be
// visible.
func outside(tri [3]VertexOutput) bool {
	for axis := 0; axis < 3; axis++ {
		beyondMin, beyondMax := 0, 0
		for _, v := range tri {
			if v.Clip[axis] < -v.Clip[3] {
				beyondMin++
			}
			if v.Clip[axis] > v.Clip[3] {
				beyondMax++
			}
		}
		if beyondMin == 3 || beyondMax == 3 {
			return true
		}
	}
	return false
}

// clipTriangle clips a triangle against the near plane and appends the zero, one or two triangles that remain to
// out. Triangles entirely outside the view volume are dropped. Winding is preserved.
func clipTriangle(tri [3]VertexOutput, out [][3]VertexOutput) [][3]VertexOutput {

	if outside(tri) {
		return out
	}

	var d [3]float32
	inside := 0
	for i, v := range tri {
		d[i] = nearDistance(v)
		if d[i] >= 0 {
			inside++
		}
	}

	switch inside {
	case 0:
		return out
	case 3:
		return append(out, tri)
	}

	// Sutherland-Hodgman against the single plane; a triangle becomes a polygon of at most four vertices.
	poly := make([]VertexOutput, 0, 4)

	for i := range tri {
		j := (i + 1) % 3
		a, b := tri[i], tri[j]
		da, db := d[i], d[j]
		if da >= 0 {
			poly = append(poly, a)
		}
		if (da >= 0) != (db >= 0) {
			v := lerpVertex(a, b, da/(da-db))
			// Snap onto the plane so rounding can't leave it a hair behind.
			v.Clip[2] = -v.Clip[3]
			poly = append(poly, v)
		}
	}

	for i := 1; i+1 < len(poly); i++ {
		out = append(out, [3]VertexOutput{poly[0], poly[i], poly[i+1]})
	}

	return out

}
