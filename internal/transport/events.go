package transport

import (
	"filetug/internal/common"
	settingsDomain "filetug/internal/domain/settings"
)

// ForwardSettingsEvents publishes every settings change as settings:changed
// and, for grouped keys, the coarse group event as well.
func ForwardSettingsEvents(store settingsDomain.Store, events EventEmitter) (unsubscribe func()) {
	return store.Subscribe(func(change settingsDomain.Change) {
		events.Emit(common.EventSettingsChanged, change)

		switch change.Group {
		case settingsDomain.GroupDirectoryView:
			events.Emit(common.EventDirectoryViewSettings)
		case settingsDomain.GroupFileDisplay:
			events.Emit(common.EventFileDisplaySettings)
		}
	})
}
