package environment

// JSON member names of the environment document.
const (
	keyDomains     = "domains"
	keyGateways    = "gateways"
	keyID          = "id"
	keyName        = "name"
	keyDescription = "description"
	keyWidth       = "width"
	keyHeight      = "height"
	keyObstacles   = "obstacles"
	keyAccesses    = "accesses"
	keyShape       = "shape"
	keyDomain1     = "domain1"
	keyDomain2     = "domain2"
)
