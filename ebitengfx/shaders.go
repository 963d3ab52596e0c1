package ebitengfx

// Fragment shaders for the built-in programs. Vertex work happens on the CPU in the matching VertexStage; the vertex
// color carries its result.

// LitFragmentShader modulates the diffuse map (source 0) by the light in the vertex color's RGB and adds the specular
// map (source 1) scaled by the specular intensity in its alpha.
var LitFragmentShader = []byte(`//kage:unit pixels
package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	diffuse := imageSrc0At(srcPos)
	specular := imageSrc1At(srcPos)
	rgb := diffuse.rgb*color.rgb + specular.rgb*color.a
	return vec4(clamp(rgb, 0, 1), 1)
}
`)

// ColorFragmentShader fills triangles with the vertex color.
var ColorFragmentShader = []byte(`//kage:unit pixels
package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return vec4(color.rgb, 1)
}
`)

// TextureFragmentShader draws source 0 as-is.
var TextureFragmentShader = []byte(`//kage:unit pixels
package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return imageSrc0At(srcPos) * color
}
`)
