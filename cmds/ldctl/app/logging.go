package app

import (
	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/logging/logrusl"
	"github.com/mandelsoft/logging/logrusr"
)

var REALM = logging.DefineRealm("ldctl", "LDraw command line tool")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

func init() {
	logcfg := logrusl.Human(true)
	lctx := logging.DefaultContext()
	lctx.SetBaseLogger(logrusr.New(logcfg.NewLogrus()))
}

// SetLogLevel sets the level for the tool and the library realms.
func SetLogLevel(l int) {
	lctx := logging.DefaultContext()
	lctx.AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("ldctl")))
	lctx.AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("ldraw")))
}
