package cln

// lightningd commands, sent with named parameters.

type getInfoRequest struct{}

func (getInfoRequest) Name() string { return "getinfo" }

type listFundsRequest struct{}

func (listFundsRequest) Name() string { return "listfunds" }

type listPeersRequest struct{}

func (listPeersRequest) Name() string { return "listpeers" }

type listPeerChannelsRequest struct{}

func (listPeerChannelsRequest) Name() string { return "listpeerchannels" }

type listNodesRequest struct{}

func (listNodesRequest) Name() string { return "listnodes" }

type listChannelsRequest struct{}

func (listChannelsRequest) Name() string { return "listchannels" }

type connectRequest struct {
	// id@host:port
	ID string `json:"id"`
}

func (connectRequest) Name() string { return "connect" }

type fundChannelRequest struct {
	ID     string `json:"id"`
	Amount uint64 `json:"amount"`
}

func (fundChannelRequest) Name() string { return "fundchannel" }

type closeRequest struct {
	ID string `json:"id"`
}

func (closeRequest) Name() string { return "close" }

type invoiceRequest struct {
	AmountMsat  uint64 `json:"amount_msat"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

func (invoiceRequest) Name() string { return "invoice" }

type payRequest struct {
	Bolt11 string `json:"bolt11"`
}

func (payRequest) Name() string { return "pay" }

type listPaysRequest struct {
	Bolt11 string `json:"bolt11,omitempty"`
}

func (listPaysRequest) Name() string { return "listpays" }

type listInvoicesRequest struct{}

func (listInvoicesRequest) Name() string { return "listinvoices" }

type decodePayRequest struct {
	Bolt11 string `json:"bolt11"`
}

func (decodePayRequest) Name() string { return "decodepay" }

type waitAnyInvoiceRequest struct {
	LastPayIndex uint64 `json:"lastpay_index"`
}

func (waitAnyInvoiceRequest) Name() string { return "waitanyinvoice" }

type newAddrRequest struct{}

func (newAddrRequest) Name() string { return "newaddr" }
