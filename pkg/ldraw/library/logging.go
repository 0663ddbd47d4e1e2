package library

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ldraw/library", "LDraw part library")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
