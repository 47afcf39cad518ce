package renderer

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/launchpad/internal/engine/gpu"
)

type texture struct {
	id     uint32
	width  int32
	height int32
}

// NewTexture uploads an RGBA image with mipmaps and repeat wrapping.
func (r *Renderer) NewTexture(img *image.RGBA) (gpu.Texture, error) {
	bounds := img.Bounds()
	t := &texture{
		width:  int32(bounds.Dx()),
		height: int32(bounds.Dy()),
	}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, t.width, t.height, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t, nil
}

func (t *texture) Size() (int32, int32) { return t.width, t.height }

// Release deletes the texture. Safe to call more than once.
func (t *texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
