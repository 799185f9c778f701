package conveyor

import "errors"

// ErrInvalidSpeed is wrapped by the panic raised when a Speed value outside
// the four recognized classes is used to construct a Lane or Tile. Recognized
// so a host can errors.Is against it if it recovers from construction-time
// misconfiguration.
var ErrInvalidSpeed = errors.New("conveyor: invalid speed class")
