package colors

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ldraw/colors", "LDraw color table")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
