/*
Package option implements optional values.

Optional values are used where a caller may leave a bound unspecified, e.g. the
start or end of a retimed line, or an open end of a frame slice. An unset option is represented in-band and resolved with
OrElse:

	start := opt.OrElse(line.Start)

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package option
