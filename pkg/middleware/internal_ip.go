package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// InternalOnly restringe as rotas /api/* às redes internas configuradas.
// As demais rotas passam direto e ficam por conta do AuthMiddleware.
func InternalOnly(allowedNetworks []string) func(http.Handler) http.Handler {
	networks := parseNetworks(allowedNetworks)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}

			ip := remoteIP(r)
			if ip == nil || !isInternalIP(ip, networks) {
				logrus.Warningf("Acesso externo bloqueado em %s (origem %s)", r.URL.Path, r.RemoteAddr)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func parseNetworks(cidrs []string) []*net.IPNet {
	networks := make([]*net.IPNet, 0, len(cidrs))

	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}

		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			logrus.Warningf("Rede interna inválida ignorada: %s", cidr)
			continue
		}

		networks = append(networks, network)
	}

	return networks
}

func remoteIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return net.ParseIP(host)
}

func isInternalIP(ip net.IP, networks []*net.IPNet) bool {
	for _, network := range networks {
		if network.Contains(ip) {
			return true
		}
	}

	return false
}
