package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
)

// debugMessenger forwards validation layer messages to the log.
type debugMessenger struct {
	log       logrus.FieldLogger
	messenger ext_debug_utils.DebugUtilsMessenger
}

func (m *debugMessenger) createInfo() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    m.logDebug,
	}
}

func (m *debugMessenger) attach(instance core1_0.Instance) error {
	var err error
	debugLoader := ext_debug_utils.CreateExtensionFromInstance(instance)
	if debugLoader == nil {
		return errors.Newf("%s is not active on the instance", ext_debug_utils.ExtensionName)
	}
	m.messenger, _, err = debugLoader.CreateDebugUtilsMessenger(instance, nil, m.createInfo())
	return errors.Wrap(err, "create debug messenger")
}

func (m *debugMessenger) destroy() {
	if m.messenger != nil {
		m.messenger.Destroy(nil)
		m.messenger = nil
	}
}

// logDebug never asks the driver to abort the call that raised the message.
func (m *debugMessenger) logDebug(msgType ext_debug_utils.MessageTypes, severity ext_debug_utils.MessageSeverities, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	entry := m.log.WithFields(logrus.Fields{
		"severity": severity.String(),
		"type":     msgType.String(),
	})

	switch {
	case severity&ext_debug_utils.SeverityError != 0:
		entry.Error(data.Message)
	case severity&ext_debug_utils.SeverityWarning != 0:
		entry.Warn(data.Message)
	default:
		entry.Debug(data.Message)
	}
	return false
}
