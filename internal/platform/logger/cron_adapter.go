package logger

import "fmt"

// CronAdapter implementa cron.Logger (robfig/cron/v3) sin importar el paquete.
type CronAdapter struct {
	log Logger
}

func NewCronAdapter(l Logger) CronAdapter {
	if l == nil {
		l = Nop()
	}
	return CronAdapter{log: l.With(map[string]any{"component": "cron"})}
}

func (c CronAdapter) Info(msg string, keysAndValues ...any) {
	c.log.Debug(msg, pairs(keysAndValues))
}

func (c CronAdapter) Error(err error, msg string, keysAndValues ...any) {
	f := pairs(keysAndValues)
	f["error"] = err
	c.log.Error(msg, f)
}

func pairs(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}
