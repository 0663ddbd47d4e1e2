package importer

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ldraw/import", "LDraw model import")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
