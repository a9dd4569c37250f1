// Package mosaic provides the adaptive subdivision engine behind the pointer
// driven mosaic.
//
// The package is organised around a handful of concrete types:
//
//   - [Tile]: an axis-aligned rectangle with one cached mean color
//   - [Partition]: the set of tiles covering the canvas exactly once
//   - [Sampler]: computes the mean color of a canvas rectangle over an [Image]
//   - [ImageSource]: the fixed sequence of source images and the current index
//   - [Pointer]: the most recent tracking snapshot, written asynchronously
//   - [Engine]: the per-frame state machine tying everything together
//
// # Example
//
//	src, _ := mosaic.NewImageSource(images...)
//	ptr := mosaic.NewPointer()
//	eng, _ := mosaic.New(mosaic.DefaultConfig(), src, ptr, mosaic.ScanSampler{})
//	ptr.Set(0.5, 0.5)
//	frame := eng.Step()
//
// # Thread Safety
//
// Engine and Partition are NOT thread-safe and must be driven from a single
// frame loop. Pointer is the only type meant to be written from another
// goroutine.
package mosaic
