package narration

// Key names a message in the locale catalogs.
type Key string

// Message keys.
const (
	KeyStartArrive   Key = "start.arrive"
	KeyStartDoors    Key = "start.doors"
	KeyStartReprompt Key = "start.reprompt"

	KeyResumeFloor2Intro    Key = "resume.floor2.intro"
	KeyResumeFloor2Options  Key = "resume.floor2.options"
	KeyResumeFloor2Reprompt Key = "resume.floor2.reprompt"
	KeyResumeFloor2Sticky   Key = "resume.floor2.sticky"
	KeyResumeFloor3Intro    Key = "resume.floor3.intro"
	KeyResumeFloor3Reprompt Key = "resume.floor3.reprompt"
	KeyResumeFloor3Treats   Key = "resume.floor3.treats"

	KeyGoodbye Key = "goodbye"

	KeyMisunderstood Key = "misunderstood"
	KeyThrottled     Key = "throttled"

	KeyFailure Key = "failure"

	KeyWarpFloor2Intro    Key = "warp.floor2.intro"
	KeyWarpFloor2Options  Key = "warp.floor2.options"
	KeyWarpFloor2Reprompt Key = "warp.floor2.reprompt"
	KeyWarpFloor2Sticky   Key = "warp.floor2.sticky"
	KeyWarpFloor3Intro    Key = "warp.floor3.intro"
	KeyWarpFloor3Reprompt Key = "warp.floor3.reprompt"
	KeyWarpFloor3Treats   Key = "warp.floor3.treats"
	KeyWarpInvalidNumber  Key = "warp.invalid_number"
	KeyWarpInvalidTarget  Key = "warp.invalid_target"
	KeyWarpLocked         Key = "warp.locked"

	KeyFloor1BarryAgain              Key = "floor1.barry.again"
	KeyFloor1BarryAgainReprompt      Key = "floor1.barry.again_reprompt"
	KeyFloor1BarryAsked              Key = "floor1.barry.asked"
	KeyFloor1BarryAskedReprompt      Key = "floor1.barry.asked_reprompt"
	KeyFloor1BarryRefuse             Key = "floor1.barry.refuse"
	KeyFloor1BarryRefuseReprompt     Key = "floor1.barry.refuse_reprompt"
	KeyFloor1BarryRoomHelp           Key = "floor1.barry_room.help"
	KeyFloor1BarryRoomReprompt       Key = "floor1.barry_room.reprompt"
	KeyFloor1BarryRoomRevisit        Key = "floor1.barry_room.revisit"
	KeyFloor1BarryRoomRevisitOptions Key = "floor1.barry_room.revisit_options"
	KeyFloor1BarryRoomVisit          Key = "floor1.barry_room.visit"
	KeyFloor1BarryRoomVisitOptions   Key = "floor1.barry_room.visit_options"
	KeyFloor1HallHelp                Key = "floor1.hall.help"
	KeyFloor1HallReprompt            Key = "floor1.hall.reprompt"
	KeyFloor1HallRevisit             Key = "floor1.hall.revisit"
	KeyFloor1HallRevisitOptions      Key = "floor1.hall.revisit_options"
	KeyFloor1HallVisit               Key = "floor1.hall.visit"
	KeyFloor1HallVisitOptions        Key = "floor1.hall.visit_options"
	KeyFloor1InvalidBackward         Key = "floor1.invalid.backward"
	KeyFloor1InvalidBarryReprompt    Key = "floor1.invalid.barry_reprompt"
	KeyFloor1InvalidHallReprompt     Key = "floor1.invalid.hall_reprompt"
	KeyFloor1InvalidLarryReprompt    Key = "floor1.invalid.larry_reprompt"
	KeyFloor1InvalidLeft             Key = "floor1.invalid.left"
	KeyFloor1InvalidRight            Key = "floor1.invalid.right"
	KeyFloor1InvalidTalk             Key = "floor1.invalid.talk"
	KeyFloor1LarryAgain              Key = "floor1.larry.again"
	KeyFloor1LarryCorridor           Key = "floor1.larry.corridor"
	KeyFloor1LarryQuestion           Key = "floor1.larry.question"
	KeyFloor1LarryRefuse             Key = "floor1.larry.refuse"
	KeyFloor1LarryReprompt           Key = "floor1.larry.reprompt"
	KeyFloor1LarryToldNo             Key = "floor1.larry.told_no"
	KeyFloor1LarryToldYes            Key = "floor1.larry.told_yes"
	KeyFloor1LarryStickyFloor        Key = "floor1.larry.sticky_floor"
	KeyFloor1LarryRoomHelp           Key = "floor1.larry_room.help"
	KeyFloor1LarryRoomReprompt       Key = "floor1.larry_room.reprompt"
	KeyFloor1LarryRoomRevisit        Key = "floor1.larry_room.revisit"
	KeyFloor1LarryRoomRevisitOptions Key = "floor1.larry_room.revisit_options"
	KeyFloor1LarryRoomVisit          Key = "floor1.larry_room.visit"
	KeyFloor1LarryRoomVisitOptions   Key = "floor1.larry_room.visit_options"

	KeyFloor2CaughtIntro                Key = "floor2.caught.intro"
	KeyFloor2CaughtReprompt             Key = "floor2.caught.reprompt"
	KeyFloor2CaughtRestart              Key = "floor2.caught.restart"
	KeyFloor2EscapeIntro                Key = "floor2.escape.intro"
	KeyFloor2EscapeReprompt             Key = "floor2.escape.reprompt"
	KeyFloor2EscapeTreats               Key = "floor2.escape.treats"
	KeyFloor2Help                       Key = "floor2.help"
	KeyFloor2InvalidBackward            Key = "floor2.invalid.backward"
	KeyFloor2InvalidContinue            Key = "floor2.invalid.continue"
	KeyFloor2InvalidForward             Key = "floor2.invalid.forward"
	KeyFloor2InvalidLeft                Key = "floor2.invalid.left"
	KeyFloor2InvalidRight               Key = "floor2.invalid.right"
	KeyFloor2JunctionBendLeft           Key = "floor2.junction.bend_left"
	KeyFloor2JunctionBendLeftReprompt   Key = "floor2.junction.bend_left_reprompt"
	KeyFloor2JunctionBendRight          Key = "floor2.junction.bend_right"
	KeyFloor2JunctionBendRightReprompt  Key = "floor2.junction.bend_right_reprompt"
	KeyFloor2JunctionCorridor           Key = "floor2.junction.corridor"
	KeyFloor2JunctionCorridorReprompt   Key = "floor2.junction.corridor_reprompt"
	KeyFloor2JunctionCrossroads         Key = "floor2.junction.crossroads"
	KeyFloor2JunctionCrossroadsReprompt Key = "floor2.junction.crossroads_reprompt"
	KeyFloor2JunctionDeadEnd            Key = "floor2.junction.dead_end"
	KeyFloor2JunctionDeadEndReprompt    Key = "floor2.junction.dead_end_reprompt"
	KeyFloor2JunctionFork               Key = "floor2.junction.fork"
	KeyFloor2JunctionForkReprompt       Key = "floor2.junction.fork_reprompt"
	KeyFloor2JunctionStart              Key = "floor2.junction.start"
	KeyFloor2JunctionStartReprompt      Key = "floor2.junction.start_reprompt"
	KeyFloor2JunctionTeeLeft            Key = "floor2.junction.tee_left"
	KeyFloor2JunctionTeeLeftReprompt    Key = "floor2.junction.tee_left_reprompt"
	KeyFloor2JunctionTeeRight           Key = "floor2.junction.tee_right"
	KeyFloor2JunctionTeeRightReprompt   Key = "floor2.junction.tee_right_reprompt"
	KeyFloor2StepBackward               Key = "floor2.step.backward"
	KeyFloor2StepFollowLeft             Key = "floor2.step.follow_left"
	KeyFloor2StepFollowRight            Key = "floor2.step.follow_right"
	KeyFloor2StepForward                Key = "floor2.step.forward"
	KeyFloor2StepLeft                   Key = "floor2.step.left"
	KeyFloor2StepRight                  Key = "floor2.step.right"

	KeyFloor3Choice          Key = "floor3.choice"
	KeyFloor3EndingBoth      Key = "floor3.ending.both"
	KeyFloor3EndingCake      Key = "floor3.ending.cake"
	KeyFloor3EndingDoughnut  Key = "floor3.ending.doughnut"
	KeyFloor3Help            Key = "floor3.help"
	KeyFloor3Invalid         Key = "floor3.invalid"
	KeyFloor3InvalidReprompt Key = "floor3.invalid_reprompt"
	KeyFloor3Reprompt        Key = "floor3.reprompt"

	KeyTitleBarryRefuse  Key = "title.barry_refuse"
	KeyTitleBarryReply   Key = "title.barry_reply"
	KeyTitleBarryRoom    Key = "title.barry_room"
	KeyTitleBoth         Key = "title.both"
	KeyTitleCake         Key = "title.cake"
	KeyTitleCaught       Key = "title.caught"
	KeyTitleChoice       Key = "title.choice"
	KeyTitleCorridor     Key = "title.corridor"
	KeyTitleCorridorHelp Key = "title.corridor_help"
	KeyTitleDoughnut     Key = "title.doughnut"
	KeyTitleGoodbye      Key = "title.goodbye"
	KeyTitleHall         Key = "title.hall"
	KeyTitleInvalid      Key = "title.invalid"
	KeyTitleLarryRoom    Key = "title.larry_room"
	KeyTitleResumeFloor2 Key = "title.resume_floor2"
	KeyTitleResumeFloor3 Key = "title.resume_floor3"
	KeyTitleStart        Key = "title.start"
	KeyTitleWarpFloor2   Key = "title.warp_floor2"
	KeyTitleWarpFloor3   Key = "title.warp_floor3"
)
