package bayesnet

// Version is the library version reported by the command line and the servers.
const Version = "0.4.0"
