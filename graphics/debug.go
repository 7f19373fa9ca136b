package graphics

import "fmt"

// KHR_debug enumerants, used to classify messages arriving on the debug
// channel.
const (
	DEBUG_SOURCE_API             Enum = 0x8246
	DEBUG_SOURCE_WINDOW_SYSTEM   Enum = 0x8247
	DEBUG_SOURCE_SHADER_COMPILER Enum = 0x8248
	DEBUG_SOURCE_THIRD_PARTY     Enum = 0x8249
	DEBUG_SOURCE_APPLICATION     Enum = 0x824A
	DEBUG_SOURCE_OTHER           Enum = 0x824B

	DEBUG_TYPE_ERROR               Enum = 0x824C
	DEBUG_TYPE_DEPRECATED_BEHAVIOR Enum = 0x824D
	DEBUG_TYPE_UNDEFINED_BEHAVIOR  Enum = 0x824E
	DEBUG_TYPE_PORTABILITY         Enum = 0x824F
	DEBUG_TYPE_PERFORMANCE         Enum = 0x8250
	DEBUG_TYPE_OTHER               Enum = 0x8251

	DEBUG_SEVERITY_HIGH         Enum = 0x9146
	DEBUG_SEVERITY_MEDIUM       Enum = 0x9147
	DEBUG_SEVERITY_LOW          Enum = 0x9148
	DEBUG_SEVERITY_NOTIFICATION Enum = 0x826B
)

// DebugMessage is one report from the native debug channel. The driver
// delivers these synchronously on the context thread.
type DebugMessage struct {
	Source   Enum
	Type     Enum
	Severity Enum
	ID       uint32
	Message  string
}

// Informational reports whether the message carries notification severity,
// the only class the session is allowed to drop.
func (m DebugMessage) Informational() bool {
	return m.Severity == DEBUG_SEVERITY_NOTIFICATION
}

func (m DebugMessage) String() string {
	return fmt.Sprintf("%s %s [%s] 0x%04X: %s",
		debugSourceName(m.Source), debugTypeName(m.Type), debugSeverityName(m.Severity), m.ID, m.Message)
}

// DebugError escalates a non-informational debug message as an error.
type DebugError struct {
	Message DebugMessage
}

func (e *DebugError) Error() string {
	return "gl debug: " + e.Message.String()
}

func debugSourceName(s Enum) string {
	switch s {
	case DEBUG_SOURCE_API:
		return "api"
	case DEBUG_SOURCE_WINDOW_SYSTEM:
		return "window system"
	case DEBUG_SOURCE_SHADER_COMPILER:
		return "shader compiler"
	case DEBUG_SOURCE_THIRD_PARTY:
		return "third party"
	case DEBUG_SOURCE_APPLICATION:
		return "application"
	default:
		return "other"
	}
}

func debugTypeName(t Enum) string {
	switch t {
	case DEBUG_TYPE_ERROR:
		return "error"
	case DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "deprecated behavior"
	case DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "undefined behavior"
	case DEBUG_TYPE_PORTABILITY:
		return "portability"
	case DEBUG_TYPE_PERFORMANCE:
		return "performance"
	default:
		return "other"
	}
}

func debugSeverityName(s Enum) string {
	switch s {
	case DEBUG_SEVERITY_HIGH:
		return "high"
	case DEBUG_SEVERITY_MEDIUM:
		return "medium"
	case DEBUG_SEVERITY_LOW:
		return "low"
	case DEBUG_SEVERITY_NOTIFICATION:
		return "notification"
	default:
		return "unknown"
	}
}
