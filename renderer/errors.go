package renderer

import "errors"

var (
	ErrSceneNotDefined    = errors.New("renderer: no scene defined")
	ErrCameraNotDefined   = errors.New("renderer: no camera defined")
	ErrInvalidFrameDims   = errors.New("renderer: frame dimensions must be at least 1x1")
	ErrInvalidSampleCount = errors.New("renderer: samples per pixel must be at least 1")
	ErrInvalidThreadCount = errors.New("renderer: thread count must be at least 1")
)
