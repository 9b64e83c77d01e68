/*
Package ass is an environment for karaoke effects working on Advanced
SubStation Alpha (ASS) subtitle files.

The environment reads the resolution, styles and dialogue events of a
script. Karaoke override tags (\k, \K, \kf, \ko) in event texts split lines
into syllables. Lines written by effects are collected as dialogue events and
dumped as a complete script, carrying over the script info and styles of the
input.

	env, err := ass.Open("song.ass", ass.Options{FPS: 23.976})
	...
	err = env.Dump(os.Stdout)

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ass

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.ass'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.ass")
}
