// Package zapadapter plugs a dailylog Logger into zap.
//
//	zl := zap.New(zapadapter.NewCore(factory.Get()))
//
// zap fields become Logger fields in the order they were given. Levels map
// one to one except DPanic, which is logged as an error.
package zapadapter
